package normalizer

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// homoglyphs bảng ký tự trông giống nhau mà OCR hay trả về, map sang ký tự ASCII tương ứng.
// Ký tự không có trong bảng được giữ nguyên.
var homoglyphs = map[rune]rune{
	'×': 'x',  // × MULTIPLICATION SIGN
	'—': '-',  // — EM DASH
	'–': '-',  // – EN DASH
	'‘': '\'', // ‘ LEFT SINGLE QUOTATION MARK
	'’': '\'', // ’ RIGHT SINGLE QUOTATION MARK
	'“': '"',  // “ LEFT DOUBLE QUOTATION MARK
	'”': '"',  // ” RIGHT DOUBLE QUOTATION MARK
}

// foldRune trả về ký tự thay thế nếu r là homoglyph
func foldRune(r rune) rune {
	if mapped, ok := homoglyphs[r]; ok {
		return mapped
	}
	return r
}

// FoldHomoglyphs thay các homoglyph trong text bằng ký tự ASCII tương ứng.
// Chuỗi rỗng trả về chuỗi rỗng.
func FoldHomoglyphs(text string) string {
	if text == "" {
		return ""
	}
	// Transformer tạo mới mỗi lần gọi: transform.Transformer không an toàn khi dùng chung giữa goroutine
	out, _, _ := transform.String(runes.Map(foldRune), text)
	return out
}

// IsHomoglyph kiểm tra r có nằm trong bảng homoglyph không
func IsHomoglyph(r rune) bool {
	_, ok := homoglyphs[r]
	return ok
}
