package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	punctRegex      = regexp.MustCompile(`[\W_]+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a free-text name: accents stripped, lowercased,
// punctuation dropped, whitespace collapsed.
func Normalize(s string) string {
	s, _, _ = transform.String(stripAccents, strings.ToLower(s))
	s = punctRegex.ReplaceAllString(s, " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// separators that join multiple artists on one bill. the word forms only
// count on word boundaries.
var separatorRegex = regexp.MustCompile(`[,/&+@–—-]|\b(?:feat|ft|with|x|vs)\b`)

var stopwords = map[string]struct{}{
	"the":      {},
	"and":      {},
	"los":      {},
	"les":      {},
	"des":      {},
	"live":     {},
	"tour":     {},
	"concert":  {},
	"show":     {},
	"night":    {},
	"party":    {},
	"festival": {},
	"club":     {},
	"salle":    {},
	"soiree":   {},
}

// Tokenize splits any number of fields on the multi-artist separators and
// returns the surviving words as a set. Tokens of length <= 2 and stopwords
// are discarded; duplicates collapse.
func Tokenize(fields ...string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, field := range fields {
		for _, part := range separatorRegex.Split(strings.ToLower(field), -1) {
			for _, tok := range strings.Fields(Normalize(part)) {
				if len(tok) <= 2 {
					continue
				}
				if _, stop := stopwords[tok]; stop {
					continue
				}
				out[tok] = struct{}{}
			}
		}
	}
	return out
}

// Overlap is the Jaccard ratio of two token sets. Symmetric, 0 when either
// side is empty.
func Overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// SharesToken reports whether the two sets have at least one token in common.
func SharesToken(a, b map[string]struct{}) bool {
	for tok := range a {
		if _, ok := b[tok]; ok {
			return true
		}
	}
	return false
}
