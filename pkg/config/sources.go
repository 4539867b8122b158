package config

// BuiltinSources returns the default source registry
func BuiltinSources() []Source {
	return []Source{
		// general news
		{Name: "VnExpress", URL: "https://vnexpress.net/rss/tin-moi-nhat.rss", Category: "general"},
		{Name: "Thanh Niên", URL: "https://thanhnien.vn/rss/home.rss", Category: "general"},
		{Name: "Tuổi Trẻ", URL: "https://tuoitre.vn/rss/tin-moi-nhat.rss", Category: "general"},

		// gold prices
		{Name: "Vietstock - Giá vàng", URL: "https://vietstock.vn/rss/vang.rss", Category: "gold"},
		{Name: "24h - Giá vàng", URL: "https://www.24h.com.vn/upload/rss/vang-ngoai-te.rss", Category: "gold"},

		// stock market
		{Name: "Vietstock - Chứng khoán", URL: "https://vietstock.vn/rss/chung-khoan.rss", Category: "stock"},
		{Name: "CafeBiz - Thị trường chứng khoán", URL: "https://cafebiz.vn/trang-chu.rss", Category: "stock"},
	}
}
