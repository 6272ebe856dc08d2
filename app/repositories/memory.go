package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/edu-certificate/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberLecture struct {
	memberID  int64
	lectureID int64
}

// MemoryCertificateRepository lưu chứng chỉ trong bộ nhớ, giữ cùng ràng buộc unique như MongoDB.
// Dùng cho chế độ dev (không cấu hình mongo.url) và cho test.
type MemoryCertificateRepository struct {
	mu     sync.RWMutex
	byID   map[primitive.ObjectID]*models.Certificate
	byPair map[memberLecture]primitive.ObjectID
}

// NewMemoryCertificateRepository tạo repository rỗng
func NewMemoryCertificateRepository() *MemoryCertificateRepository {
	return &MemoryCertificateRepository{
		byID:   make(map[primitive.ObjectID]*models.Certificate),
		byPair: make(map[memberLecture]primitive.ObjectID),
	}
}

// ExistsByMemberAndLecture kiểm tra cặp (member, lecture)
func (r *MemoryCertificateRepository) ExistsByMemberAndLecture(_ context.Context, memberID, lectureID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byPair[memberLecture{memberID, lectureID}]
	return ok, nil
}

// Save thêm chứng chỉ, trả ErrDuplicate nếu cặp đã tồn tại
func (r *MemoryCertificateRepository) Save(_ context.Context, cert *models.Certificate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := memberLecture{cert.MemberID, cert.LectureID}
	if _, ok := r.byPair[key]; ok {
		return ErrDuplicate
	}
	if cert.ID.IsZero() {
		cert.ID = primitive.NewObjectID()
	}

	stored := *cert
	r.byID[cert.ID] = &stored
	r.byPair[key] = cert.ID
	return nil
}

// FindByMemberAndLecture tìm theo cặp (member, lecture)
func (r *MemoryCertificateRepository) FindByMemberAndLecture(_ context.Context, memberID, lectureID int64) (*models.Certificate, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPair[memberLecture{memberID, lectureID}]
	if !ok {
		return nil, false, nil
	}
	cert := *r.byID[id]
	return &cert, true, nil
}

// FindByID tìm theo id
func (r *MemoryCertificateRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Certificate, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	cert := *stored
	return &cert, true, nil
}

// UpdateStatus ghi trạng thái duyệt
func (r *MemoryCertificateRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.ApprovalStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	stored.ApprovalStatus = status
	stored.UpdatedAt = updatedAt
	return nil
}

// Count số chứng chỉ đang lưu
func (r *MemoryCertificateRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// MemoryLectureRepository khóa học trong bộ nhớ
type MemoryLectureRepository struct {
	mu       sync.RWMutex
	lectures map[int64]models.Lecture
}

// NewMemoryLectureRepository tạo repository với danh sách khóa học ban đầu
func NewMemoryLectureRepository(lectures ...models.Lecture) *MemoryLectureRepository {
	repo := &MemoryLectureRepository{lectures: make(map[int64]models.Lecture, len(lectures))}
	for _, l := range lectures {
		repo.lectures[l.ID] = l
	}
	return repo
}

// FindByID lấy khóa học theo id
func (r *MemoryLectureRepository) FindByID(_ context.Context, id int64) (*models.Lecture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lecture, ok := r.lectures[id]
	if !ok {
		return nil, false, nil
	}
	return &lecture, true, nil
}

// Upsert thêm hoặc thay thế khóa học
func (r *MemoryLectureRepository) Upsert(_ context.Context, lecture *models.Lecture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lectures[lecture.ID] = *lecture
	return nil
}
