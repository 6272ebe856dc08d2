package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalStatus trạng thái duyệt chứng chỉ
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// OCRStatusSuccess ghi vào chứng chỉ khi OCR khớp tên khóa học
const OCRStatusSuccess = "SUCCESS"

// IsValid kiểm tra status có thuộc tập trạng thái đã định nghĩa không
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// IsResolved admin đã duyệt hoặc từ chối
func (s ApprovalStatus) IsResolved() bool {
	switch s {
	case ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Certificate chứng chỉ hoàn thành khóa học của một member.
// Mỗi cặp (member_id, lecture_id) chỉ có tối đa một chứng chỉ.
type Certificate struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID       int64              `bson:"member_id" json:"member_id"`
	LectureID      int64              `bson:"lecture_id" json:"lecture_id"`
	ImageKey       string             `bson:"image_key" json:"-"`                   // Key trong private storage, không phải URL public
	OCRStatus      string             `bson:"ocr_status" json:"ocr_status"`           // Trạng thái OCR để chẩn đoán
	ApprovalStatus ApprovalStatus     `bson:"approval_status" json:"approval_status"` // Trạng thái duyệt
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`           // Không đổi sau khi tạo
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewCertificate tạo chứng chỉ mới ở trạng thái PENDING
func NewCertificate(memberID, lectureID int64, imageKey string, now time.Time) *Certificate {
	return &Certificate{
		MemberID:       memberID,
		LectureID:      lectureID,
		ImageKey:       imageKey,
		OCRStatus:      OCRStatusSuccess,
		ApprovalStatus: ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Approve duyệt chứng chỉ. Gọi được ở mọi trạng thái, kể cả khi đã duyệt/từ chối.
func (c *Certificate) Approve(now time.Time) {
	c.ApprovalStatus = ApprovalApproved
	c.UpdatedAt = now
}

// Reject từ chối chứng chỉ. Gọi được ở mọi trạng thái.
func (c *Certificate) Reject(now time.Time) {
	c.ApprovalStatus = ApprovalRejected
	c.UpdatedAt = now
}
