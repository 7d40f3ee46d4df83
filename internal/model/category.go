package model

import "strings"

// Category is an analyst-defined population segment. Keywords holds the raw
// comma-separated source text exactly as the analyst typed it.
type Category struct {
	Name     string `json:"name" yaml:"name"`
	Keywords string `json:"keywords" yaml:"keywords"`
}

// KeywordList returns the parsed keywords of the category.
func (c Category) KeywordList() []string {
	return ParseKeywords(c.Keywords)
}

// KeywordCount returns how many usable keywords the category has.
func (c Category) KeywordCount() int {
	return len(c.KeywordList())
}

// ParseKeywords splits raw keyword text on commas, trims every piece and drops
// the pieces that are empty after trimming. Case is preserved.
func ParseKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
