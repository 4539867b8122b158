package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImage(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string // empty for nil
	}{
		{name: "empty", content: ""},
		{name: "no image", content: "<p>text only</p>"},
		{name: "simple", content: `<p><img src="http://x/1.jpg"></p>`, want: "http://x/1.jpg"},
		{name: "first match wins", content: `<img src="http://x/a.jpg"><img src="http://x/b.jpg">`, want: "http://x/a.jpg"},
		{name: "other attributes before src", content: `<img alt="pic" width="100" src="http://x/2.png" />`, want: "http://x/2.png"},
		{name: "inside link", content: `<a href="http://x/p"><img border="0" src="https://cdn.x/3.jpg?w=500&amp;h=300"></a></br>text`,
			want: "https://cdn.x/3.jpg?w=500&amp;h=300"},
		{name: "upper case attribute not matched", content: `<img SRC="http://x/4.jpg">`},
		{name: "single quoted not matched", content: `<img src='http://x/5.jpg'>`},
		{name: "empty src not matched", content: `<img src="">`},
		{name: "data-src matched as src suffix", content: `<img data-src="http://x/lazy.jpg">`, want: "http://x/lazy.jpg"},
		{name: "malformed markup", content: `<img src="http://x/6.jpg`},
		{name: "no attributes", content: `<img>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractImage(tt.content)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}
