package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// FoldWhitespaceAndCase bỏ toàn bộ khoảng trắng (kể cả NBSP, ideographic space) và chuyển về lowercase.
func FoldWhitespaceAndCase(text string) string {
	if text == "" {
		return ""
	}
	out, _, _ := transform.String(runes.Remove(runes.Predicate(unicode.IsSpace)), text)
	return strings.ToLower(out)
}

// FoldForMatch homoglyph trước, sau đó whitespace/case
func FoldForMatch(text string) string {
	return FoldWhitespaceAndCase(FoldHomoglyphs(text))
}
