package intent

import "strings"

// ExpandSearchTerms appends the category of every synonym keyword found in
// text, in table order. Duplicates are kept.
func ExpandSearchTerms(text string) string {
	return expandWith(defaultSynonyms(), text)
}

func expandWith(synonyms []Synonym, text string) string {
	var b strings.Builder
	b.WriteString(text)
	for _, s := range synonyms {
		if strings.Contains(text, s.Keyword) {
			b.WriteByte(' ')
			b.WriteString(s.Category)
		}
	}
	return b.String()
}
