package responses

import (
	"time"

	"github.com/edu-certificate/app/models"
)

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// HealthCheckResponse response health check
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// SubmitCertificateResponse kết quả nộp chứng chỉ
type SubmitCertificateResponse struct {
	CertificateID  string                `json:"certificate_id"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
}

// CheckCertificateResponse member đã có chứng chỉ cho khóa học chưa
type CheckCertificateResponse struct {
	Exists         bool                  `json:"exists"`
	CertificateID  string                `json:"certificate_id,omitempty"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status,omitempty"`
}

// CertificateResponse chi tiết chứng chỉ cho admin
type CertificateResponse struct {
	CertificateID  string                `json:"certificate_id"`
	MemberID       int64                 `json:"member_id"`
	LectureID      int64                 `json:"lecture_id"`
	OCRStatus      string                `json:"ocr_status"`
	ApprovalStatus models.ApprovalStatus `json:"approval_status"`
	CreatedAt      string                `json:"created_at"`
	UpdatedAt      string                `json:"updated_at"`
}

// NewCertificateResponse chuyển model sang response
func NewCertificateResponse(cert *models.Certificate) CertificateResponse {
	return CertificateResponse{
		CertificateID:  cert.ID.Hex(),
		MemberID:       cert.MemberID,
		LectureID:      cert.LectureID,
		OCRStatus:      cert.OCRStatus,
		ApprovalStatus: cert.ApprovalStatus,
		CreatedAt:      cert.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      cert.UpdatedAt.Format(time.RFC3339),
	}
}
