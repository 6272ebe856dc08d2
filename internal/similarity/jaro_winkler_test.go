package similarity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const tolerance = 1e-6

func TestJaroWinkler_ReferenceValues(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected float64
	}{
		{a: "MARTHA", b: "MARHTA", expected: 0.961111},
		{a: "DWAYNE", b: "DUANE", expected: 0.84},
		{a: "DIXON", b: "DICKSONX", expected: 0.813333},
		{a: "abc", b: "abd", expected: 0.822222},
		{a: "same", b: "same", expected: 1.0},
		{a: "abc", b: "xyz", expected: 0.0},
		{a: "", b: "abc", expected: 0.0},
	}

	for _, tc := range testCases {
		t.Run(tc.a+"_"+tc.b, func(t *testing.T) {
			assert.InDelta(t, tc.expected, JaroWinkler(tc.a, tc.b), tolerance)
		})
	}
}

func TestJaroWinkler_CountsRunesNotBytes(t *testing.T) {
	// cùng cấu trúc với MARTHA/MARHTA nhưng mỗi ký tự 3 byte
	assert.InDelta(t, 0.961111, JaroWinkler("가나다라마나", "가나다마라나"), tolerance)

	// thay 1 ký tự trong tên khóa học dài
	got := JaroWinkler("자바스프링풀스택개발자과정", "자바스프링풀스택개발지과정")
	assert.InDelta(t, 0.969231, got, tolerance)
}

func TestJaroWinkler_UnrelatedCourseNames(t *testing.T) {
	got := JaroWinkler("파이썬백엔드개발자과정", "자바스프링풀스택개발자과정")
	assert.InDelta(t, 0.613054, got, tolerance)
	assert.Less(t, got, 0.8)
}

func TestJaroWinkler_ManyDistinctRunes(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteRune(rune(0xAC00 + i))
	}
	long := b.String()
	runes := []rune(long)

	// chỉ 10 rune chung: vẫn mã hóa được
	short := string(runes[100:110])
	ascii := strings.Repeat("z", 100) + "abcdefghij" + strings.Repeat("z", 190)
	assert.InDelta(t, JaroWinkler(ascii, "abcdefghij"), JaroWinkler(long, short), tolerance)

	// 300 rune chung: không đủ mã
	_, _, ok := encodeRunes(long, long)
	assert.False(t, ok)
	assert.InDelta(t, 1.0, JaroWinkler(long, long), tolerance)

	// Jaro 0.997778, prefix 4 → có thưởng
	changed := string(runes[:299]) + "x"
	assert.InDelta(t, 0.998667, JaroWinkler(long, changed), tolerance)

	// Jaro thấp, prefix chung 4 rune: không được thưởng, giống nhánh smetrics
	reversed := make([]rune, 0, len(runes))
	reversed = append(reversed, runes[:4]...)
	for i := len(runes) - 1; i >= 4; i-- {
		reversed = append(reversed, runes[i])
	}
	_, _, ok = encodeRunes(long, string(reversed))
	require.False(t, ok)
	assert.InDelta(t, 0.513218, JaroWinkler(long, string(reversed)), tolerance)
}

func TestWinklerBoost(t *testing.T) {
	// ngưỡng là lớn hơn hẳn 0.7
	assert.Equal(t, 0.7, winklerBoost(0.7, "abcd", "abcd"))
	assert.Equal(t, 0.5, winklerBoost(0.5, "abcdx", "abcdy"))
	assert.InDelta(t, 0.8+0.1*4*0.2, winklerBoost(0.8, "자바스프링", "자바스프x"), tolerance)
	assert.InDelta(t, 0.8+0.1*2*0.2, winklerBoost(0.8, "자바x", "자바y"), tolerance)
	assert.InDelta(t, 0.8, winklerBoost(0.8, "", "abc"), tolerance)
}

func TestEncodeRunes(t *testing.T) {
	a, b, ok := encodeRunes("자바자q", "바자x")
	assert.True(t, ok)
	assert.Equal(t, "\x02\x03\x02\x00", a)
	assert.Equal(t, "\x03\x02\x01", b)
}

var hangul = map[rune]rune{'a': '가', 'b': '나', 'c': '다', 'd': '라'}

func toHangul(s string) string {
	return strings.Map(func(r rune) rune { return hangul[r] }, s)
}

// TestPropertyJaroWinklerRuneInvariant đổi bảng chữ cái không làm đổi kết quả
func TestPropertyJaroWinklerRuneInvariant(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[abcd]{0,20}`).Draw(t, "a")
		b := rapid.StringMatching(`[abcd]{0,20}`).Draw(t, "b")

		ascii := JaroWinkler(a, b)
		korean := JaroWinkler(toHangul(a), toHangul(b))

		if diff := ascii - korean; diff > tolerance || diff < -tolerance {
			t.Fatalf("ascii=%f korean=%f for %q/%q", ascii, korean, a, b)
		}
	})
}

func TestPropertyJaroWinklerBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		score := JaroWinkler(a, b)

		if score < 0 || score > 1 {
			t.Fatalf("score %f out of range for %q/%q", score, a, b)
		}
	})
}

func TestPropertyJaroWinklerIdentity(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringN(1, 40, -1).Draw(t, "a")

		if score := JaroWinkler(a, a); score != 1 {
			t.Fatalf("JaroWinkler(%q, %q) = %f, want 1", a, a, score)
		}
	})
}

func TestPropertyJaroWinklerDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.String().Draw(t, "a")
		b := rapid.String().Draw(t, "b")

		if JaroWinkler(a, b) != JaroWinkler(a, b) {
			t.Fatalf("Non-deterministic for %q/%q", a, b)
		}
	})
}
