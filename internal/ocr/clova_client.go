// Package ocr gọi dịch vụ OCR bên ngoài (CLOVA General OCR V2) để lấy các dòng chữ trên ảnh.
package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/edu-certificate/helpers/utils"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const inferSuccess = "SUCCESS"

// ErrInferFailed OCR trả về kết quả không thành công cho ảnh
var ErrInferFailed = errors.New("ocr: infer failed")

// ClientConfig cấu hình client OCR
type ClientConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// ClovaClient client cho CLOVA General OCR V2
type ClovaClient struct {
	client *resty.Client
	url    string
	logger *zap.Logger
	now    func() time.Time
}

type inferRequest struct {
	Version   string       `json:"version"`
	RequestID string       `json:"requestId"`
	Timestamp int64        `json:"timestamp"`
	Images    []inferImage `json:"images"`
}

type inferImage struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	Data   string `json:"data"`
}

type inferResponse struct {
	Images []struct {
		InferResult string       `json:"inferResult"`
		Message     string       `json:"message"`
		Fields      []inferField `json:"fields"`
	} `json:"images"`
}

type inferField struct {
	InferText string `json:"inferText"`
	LineBreak bool   `json:"lineBreak"`
}

// NewClovaClient tạo client mới
func NewClovaClient(cfg ClientConfig, logger *zap.Logger) *ClovaClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-OCR-SECRET", cfg.Secret)

	return &ClovaClient{
		client: client,
		url:    cfg.URL,
		logger: logger,
		now:    time.Now,
	}
}

// ExtractText gửi ảnh lên OCR và trả về các dòng chữ theo thứ tự đọc.
// Không retry, lỗi trả thẳng cho caller.
func (c *ClovaClient) ExtractText(ctx context.Context, image []byte, fileName string) ([]string, error) {
	requestID := utils.GenerateUUID()
	body := inferRequest{
		Version:   "V2",
		RequestID: requestID,
		Timestamp: c.now().UnixMilli(),
		Images: []inferImage{{
			Format: imageFormat(fileName),
			Name:   "certificate",
			Data:   base64.StdEncoding.EncodeToString(image),
		}},
	}

	var result inferResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("lỗi gọi OCR: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("OCR returned error status",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", truncate(resp.String(), 512)))
		return nil, fmt.Errorf("OCR trả về HTTP %d", resp.StatusCode())
	}

	if len(result.Images) == 0 {
		return []string{}, nil
	}
	img := result.Images[0]
	if img.InferResult != inferSuccess {
		return nil, fmt.Errorf("%w: %s %s", ErrInferFailed, img.InferResult, img.Message)
	}

	lines := groupLines(img.Fields)
	c.logger.Debug("OCR extracted",
		zap.String("request_id", requestID),
		zap.Int("fields", len(img.Fields)),
		zap.Int("lines", len(lines)))

	return lines, nil
}

// groupLines ghép các field thành dòng, ngắt dòng khi field có lineBreak
func groupLines(fields []inferField) []string {
	lines := make([]string, 0)
	current := make([]string, 0)

	for _, f := range fields {
		current = append(current, f.InferText)
		if f.LineBreak {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

func imageFormat(fileName string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	switch ext {
	case "jpg", "jpeg", "png", "pdf", "tif", "tiff":
		return ext
	}
	return "jpg"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
