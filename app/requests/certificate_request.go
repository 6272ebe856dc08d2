package requests

import "mime/multipart"

// SubmitCertificateRequest form upload ảnh chứng chỉ (multipart)
type SubmitCertificateRequest struct {
	LectureID int64                 `form:"lecture_id" binding:"required,min=1"` // ID khóa học
	Image     *multipart.FileHeader `form:"image" binding:"required"`            // Ảnh chứng chỉ
}

// CheckCertificateRequest query kiểm tra chứng chỉ
type CheckCertificateRequest struct {
	LectureID int64 `form:"lecture_id" binding:"required,min=1"` // ID khóa học
}

// CertificateIDUri id chứng chỉ trên path
type CertificateIDUri struct {
	ID string `uri:"id" binding:"required,len=24,hexadecimal"` // ObjectID dạng hex
}
