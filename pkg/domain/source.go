package domain

// Category groups sources and the articles they produce
type Category string

// supported categories
const (
	CategoryGeneral Category = "general"
	CategoryGold    Category = "gold"
	CategoryStock   Category = "stock"
)

// Categories lists all supported categories in display order
var Categories = []Category{CategoryGeneral, CategoryGold, CategoryStock}

// Valid reports whether c is one of the supported categories
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryGold, CategoryStock:
		return true
	}
	return false
}

// Source is a feed endpoint registered in configuration. Never mutated after startup.
type Source struct {
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	Category Category `json:"category"`
}
