package normalize

import "regexp"

// imgSrcRe matches the double-quoted src attribute of the first img tag.
// Attribute name is case-sensitive, single-quoted and unquoted values are not recognized.
var imgSrcRe = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// ExtractImage returns the src of the first img element in html content, nil if there is none
func ExtractImage(content string) *string {
	if content == "" {
		return nil
	}
	m := imgSrcRe.FindStringSubmatch(content)
	if len(m) < 2 {
		return nil
	}
	src := m[1]
	return &src
}
