// Package matcher quyết định văn bản OCR của ảnh chứng chỉ có chứa tên khóa học hay không.
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/edu-certificate/internal/normalizer"
	"github.com/edu-certificate/internal/similarity"
	"go.uber.org/zap"
)

// Stage bước đã đưa ra quyết định
type Stage string

const (
	StageRejectedInvalid Stage = "rejected_invalid" // OCR rỗng hoặc quá ngắn
	StageExact           Stage = "exact"
	StageHomoglyph       Stage = "homoglyph"
	StageSimilarity      Stage = "similarity"
	StageNone            Stage = "none" // không bước nào khớp
)

const (
	DefaultSimilarityThreshold = 0.8
	DefaultMinLengthRatio      = 0.5
)

// Config cấu hình bất biến của matcher. Giá trị 0 nghĩa là dùng mặc định.
type Config struct {
	SimilarityThreshold float64
	MinLengthRatio      float64
}

// DefaultConfig cấu hình mặc định
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: DefaultSimilarityThreshold,
		MinLengthRatio:      DefaultMinLengthRatio,
	}
}

// MatchResult kết quả chi tiết của một lần so khớp
type MatchResult struct {
	Matched bool  `json:"matched"`
	Stage   Stage `json:"stage"`
	// Similarity và EditDistance chỉ có giá trị khi đã chạy tới bước similarity
	Similarity   float64 `json:"similarity"`
	EditDistance int     `json:"edit_distance"`
}

// CertificateMatcher so khớp tên khóa học với các dòng OCR theo thứ tự từ chặt tới lỏng.
// Không giữ state theo lần gọi nên dùng chung được giữa các goroutine.
type CertificateMatcher struct {
	threshold      float64
	minLengthRatio float64
	logger         *zap.Logger
}

// NewCertificateMatcher tạo matcher mới
func NewCertificateMatcher(cfg Config, logger *zap.Logger) *CertificateMatcher {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.MinLengthRatio <= 0 {
		cfg.MinLengthRatio = DefaultMinLengthRatio
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CertificateMatcher{
		threshold:      cfg.SimilarityThreshold,
		minLengthRatio: cfg.MinLengthRatio,
		logger:         logger,
	}
}

// Threshold ngưỡng similarity đang dùng
func (m *CertificateMatcher) Threshold() float64 {
	return m.threshold
}

// Match trả về true nếu văn bản OCR chứa (hoặc đủ giống) tên khóa học
func (m *CertificateMatcher) Match(lectureName string, ocrLines []string) bool {
	return m.Evaluate(lectureName, ocrLines).Matched
}

// Evaluate chạy các bước so khớp, dừng ở bước đầu tiên thành công
func (m *CertificateMatcher) Evaluate(lectureName string, ocrLines []string) MatchResult {
	// Các dòng được nối liền, không thêm ký tự phân cách
	ocrText := strings.Join(ocrLines, "")

	result := m.evaluate(lectureName, ocrText)

	m.logger.Debug("Certificate match evaluated",
		zap.String("lecture_name", lectureName),
		zap.Int("ocr_length", utf8.RuneCountInString(ocrText)),
		zap.String("stage", string(result.Stage)),
		zap.Bool("matched", result.Matched),
		zap.Float64("similarity", result.Similarity))

	return result
}

func (m *CertificateMatcher) evaluate(lectureName, ocrText string) MatchResult {
	// Bước 0: OCR lỗi thường chỉ trả vài ký tự nhiễu
	if ocrText == "" || m.tooShort(ocrText, lectureName) {
		return MatchResult{Stage: StageRejectedInvalid}
	}

	// Bước 1: bỏ khoảng trắng + lowercase
	n1 := normalizer.FoldWhitespaceAndCase(ocrText)
	n2 := normalizer.FoldWhitespaceAndCase(lectureName)
	if strings.Contains(n1, n2) {
		return MatchResult{Matched: true, Stage: StageExact}
	}

	// Bước 2: homoglyph (× → x, dấu gạch, dấu nháy)
	h1 := normalizer.FoldForMatch(ocrText)
	h2 := normalizer.FoldForMatch(lectureName)
	if strings.Contains(h1, h2) {
		return MatchResult{Matched: true, Stage: StageHomoglyph}
	}

	// Bước 3: Jaro-Winkler trên chuỗi của bước 1
	score := similarity.JaroWinkler(n1, n2)
	result := MatchResult{
		Stage:        StageNone,
		Similarity:   score,
		EditDistance: levenshtein.ComputeDistance(n1, n2),
	}
	if score >= m.threshold {
		result.Matched = true
		result.Stage = StageSimilarity
	}
	return result
}

// tooShort độ dài tính theo ký tự, không theo byte
func (m *CertificateMatcher) tooShort(ocrText, lectureName string) bool {
	ocrLen := float64(utf8.RuneCountInString(ocrText))
	nameLen := float64(utf8.RuneCountInString(lectureName))
	return ocrLen < m.minLengthRatio*nameLen
}
