// Package repositories lưu trữ chứng chỉ và khóa học (MongoDB hoặc in-memory).
package repositories

import "errors"

var (
	// ErrNotFound không có document nào khớp điều kiện
	ErrNotFound = errors.New("repositories: not found")
	// ErrDuplicate vi phạm unique index (member_id, lecture_id)
	ErrDuplicate = errors.New("repositories: duplicate certificate")
)
