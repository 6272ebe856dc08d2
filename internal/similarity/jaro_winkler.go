// Package similarity cung cấp hàm đo độ giống nhau giữa hai chuỗi dùng cho bước so khớp cuối.
package similarity

import (
	"github.com/hbollon/go-edlib"
	"github.com/xrash/smetrics"
)

const (
	// boostThreshold chỉ cộng thưởng prefix khi điểm Jaro lớn hơn ngưỡng này
	boostThreshold = 0.7
	// prefixSize độ dài prefix chung tối đa được thưởng
	prefixSize  = 4
	prefixScale = 0.1
)

const (
	onlyInA byte = 0
	onlyInB byte = 1
	// firstShared mã đầu tiên dành cho rune xuất hiện ở cả hai chuỗi
	firstShared = 2
	maxCode     = 255
)

// JaroWinkler trả về độ tương đồng Jaro-Winkler trong [0,1], tính theo ký tự (rune).
//
// smetrics so sánh theo byte nên chuỗi UTF-8 nhiều byte (tiếng Hàn) bị tính sai.
// Jaro chỉ phụ thuộc vào phép so sánh bằng giữa ký tự của a với ký tự của b, nên mỗi rune
// được đổi thành một byte trước khi gọi smetrics; kết quả giống hệt bản tính theo rune.
//
// Khi không mã hóa được (quá nhiều rune chung) điểm Jaro lấy từ edlib. Thưởng prefix luôn
// tính ở winklerBoost để hai nhánh cho cùng một kết quả.
func JaroWinkler(a, b string) float64 {
	var j float64
	if encodedA, encodedB, ok := encodeRunes(a, b); ok {
		j = smetrics.Jaro(encodedA, encodedB)
	} else {
		j = float64(edlib.JaroSimilarity(a, b))
	}
	return winklerBoost(j, a, b)
}

// winklerBoost cộng thưởng cho prefix chung (tối đa prefixSize rune) khi j > boostThreshold
func winklerBoost(j float64, a, b string) float64 {
	if j <= boostThreshold {
		return j
	}

	ra, rb := []rune(a), []rune(b)
	prefix := 0
	for prefix < prefixSize && prefix < len(ra) && prefix < len(rb) && ra[prefix] == rb[prefix] {
		prefix++
	}
	return j + prefixScale*float64(prefix)*(1-j)
}

// encodeRunes mã hóa a và b thành chuỗi byte giữ nguyên quan hệ bằng nhau giữa a và b.
// Rune chung nhận mã riêng; rune chỉ có ở một phía không bao giờ khớp nên dùng chung một mã
// cho mỗi phía. ok = false khi số rune chung vượt quá số mã còn lại.
func encodeRunes(a, b string) (string, string, bool) {
	inB := make(map[rune]struct{}, len(b))
	for _, r := range b {
		inB[r] = struct{}{}
	}

	codes := make(map[rune]byte)
	next := firstShared

	encodedA := make([]byte, 0, len(a))
	for _, r := range a {
		if _, shared := inB[r]; !shared {
			encodedA = append(encodedA, onlyInA)
			continue
		}
		code, seen := codes[r]
		if !seen {
			if next > maxCode {
				return "", "", false
			}
			code = byte(next)
			codes[r] = code
			next++
		}
		encodedA = append(encodedA, code)
	}

	encodedB := make([]byte, 0, len(b))
	for _, r := range b {
		if code, shared := codes[r]; shared {
			encodedB = append(encodedB, code)
			continue
		}
		encodedB = append(encodedB, onlyInB)
	}

	return string(encodedA), string(encodedB), true
}
