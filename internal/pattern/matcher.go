// Package pattern provides case-insensitive keyword matching over review text.
package pattern

import "strings"

// Matcher tests text against a prepared keyword list.
type Matcher struct {
	keywords []string
}

// NewMatcher lower-cases and trims keywords once so repeated matches are cheap.
// Keywords that are empty after trimming are ignored.
func NewMatcher(keywords []string) *Matcher {
	m := &Matcher{keywords: make([]string, 0, len(keywords))}
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			m.keywords = append(m.keywords, kw)
		}
	}
	return m
}

// Empty reports whether the matcher has no usable keywords.
func (m *Matcher) Empty() bool {
	return len(m.keywords) == 0
}

// Match reports whether text contains any keyword. Missing text never matches.
func (m *Matcher) Match(text *string) bool {
	if text == nil || len(m.keywords) == 0 {
		return false
	}
	return m.MatchString(*text)
}

// MatchString is Match for text that is known to be present.
func (m *Matcher) MatchString(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range m.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
