package utils

import (
	"path"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

const maxFileNameLength = 100

// SafeFileName chuyển tên file người dùng gửi lên thành tên ASCII an toàn để làm key storage.
// Ký tự không phải chữ/số/.-_ được thay bằng '_'; tên rỗng trả về "file".
func SafeFileName(name string) string {
	// Chỉ lấy phần tên, bỏ đường dẫn client gửi kèm
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ascii := unidecode.Unidecode(name)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range ascii {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	safe := strings.Trim(b.String(), "._")
	if len(safe) > maxFileNameLength {
		safe = safe[len(safe)-maxFileNameLength:]
	}
	if safe == "" {
		return "file"
	}
	return safe
}
