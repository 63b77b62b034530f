package keywords

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKeywords applies NFKC and trims each keyword, dropping blanks.
// NFKC folds full-width latin and half-width kana so "ｓｈｏｅｓ" and
// "shoes" seed the same idea. Order is preserved.
func NormalizeKeywords(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(norm.NFKC.String(text))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}
