package automod

import (
	"strings"
)

// DefaultTerms is the stock content-policy list, applied when the config does
// not provide one. Entries must be lower case.
var DefaultTerms = []string{
	"nga",
	"ngr",
	"nigga",
	"nigger",
	"n1gger",
	"n1gga",
	"n!gger",
	"n!gga",
	"retard",
	"fucking",
}

// Filter scans message text for disallowed terms. The term list is fixed at
// construction time.
type Filter struct {
	terms []string
}

func New(terms []string) *Filter {
	if len(terms) == 0 {
		terms = DefaultTerms
	}
	return &Filter{terms: terms}
}

// Scan reports the first configured term present in content. A term matches
// when it is a substring of the lower-cased text or of a collapsed variant
// with every non-alphanumeric rune removed, which defeats separator evasion
// like "n.i.g.g.a". Matching is substring-anywhere with no word boundaries;
// benign words containing a listed term will flag too.
func (f *Filter) Scan(content string) (string, bool) {
	if content == "" {
		return "", false
	}
	lowered := strings.ToLower(content)
	collapsed := collapse(lowered)
	for _, term := range f.terms {
		if strings.Contains(lowered, term) || strings.Contains(collapsed, term) {
			return term, true
		}
	}
	return "", false
}

func collapse(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
