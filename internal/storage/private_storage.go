// Package storage lưu ảnh chứng chỉ ở vùng private (không có URL public).
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/edu-certificate/helpers/utils"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var (
	// ErrInvalidKey key rỗng hoặc trỏ ra ngoài thư mục gốc
	ErrInvalidKey = errors.New("storage: invalid key")
	// ErrObjectNotFound không có file với key này
	ErrObjectNotFound = errors.New("storage: object not found")
)

// PrivateStorage lưu file trên afero.Fs dưới một thư mục gốc.
// Production dùng OsFs, test dùng MemMapFs.
type PrivateStorage struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewPrivateStorage tạo storage với thư mục gốc root trên fs
func NewPrivateStorage(fs afero.Fs, root string, logger *zap.Logger) (*PrivateStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := fs.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("không thể tạo thư mục storage %s: %w", root, err)
	}

	return &PrivateStorage{
		fs:     afero.NewBasePathFs(fs, root),
		logger: logger,
	}, nil
}

// UploadPrivate lưu data dưới category và trả về key dạng "category/uuid_tên-file"
func (s *PrivateStorage) UploadPrivate(ctx context.Context, data []byte, category, fileName, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateSegment(category); err != nil {
		return "", err
	}

	key := path.Join(category, utils.GenerateUUID()+"_"+utils.SafeFileName(fileName))

	if err := s.fs.MkdirAll(category, 0o750); err != nil {
		return "", fmt.Errorf("lỗi tạo thư mục %s: %w", category, err)
	}
	if err := afero.WriteFile(s.fs, key, data, 0o600); err != nil {
		return "", fmt.Errorf("lỗi ghi file %s: %w", key, err)
	}

	s.logger.Debug("Uploaded private object",
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)))

	return key, nil
}

// Delete xóa object, không có cũng không lỗi
func (s *PrivateStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("lỗi xóa file %s: %w", key, err)
	}

	s.logger.Debug("Deleted private object", zap.String("key", key))
	return nil
}

// Open đọc lại nội dung object
func (s *PrivateStorage) Open(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, key)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc file %s: %w", key, err)
	}
	return data, nil
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for _, segment := range strings.Split(key, "/") {
		if err := validateSegment(segment); err != nil {
			return err
		}
	}
	return nil
}

func validateSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
