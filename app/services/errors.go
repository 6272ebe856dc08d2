package services

import "errors"

var (
	// ErrCertificateAlreadyExists member đã có chứng chỉ cho khóa học này
	ErrCertificateAlreadyExists = errors.New("chứng chỉ cho khóa học này đã tồn tại")
	// ErrLectureNotFound khóa học không tồn tại
	ErrLectureNotFound = errors.New("không tìm thấy khóa học")
	// ErrLectureMismatch chữ trên ảnh không khớp tên khóa học, user có thể chụp lại ảnh rõ hơn
	ErrLectureMismatch = errors.New("nội dung chứng chỉ không khớp với tên khóa học")
	// ErrCertificateNotFound không tìm thấy chứng chỉ
	ErrCertificateNotFound = errors.New("không tìm thấy chứng chỉ")
	// ErrInvalidImage file upload rỗng, quá lớn hoặc sai định dạng
	ErrInvalidImage = errors.New("file chứng chỉ không hợp lệ")
)
