package services

import (
	"context"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockOCRClient struct {
	mock.Mock
}

func (m *mockOCRClient) ExtractText(ctx context.Context, image []byte, fileName string) ([]string, error) {
	args := m.Called(ctx, image, fileName)
	lines, _ := args.Get(0).([]string)
	return lines, args.Error(1)
}

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) UploadPrivate(ctx context.Context, data []byte, category, fileName, contentType string) (string, error) {
	args := m.Called(ctx, data, category, fileName, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockFileStorage) Open(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockCertificateStore struct {
	mock.Mock
}

func (m *mockCertificateStore) ExistsByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (bool, error) {
	args := m.Called(ctx, memberID, lectureID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCertificateStore) Save(ctx context.Context, cert *models.Certificate) error {
	return m.Called(ctx, cert).Error(0)
}

func (m *mockCertificateStore) FindByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (*models.Certificate, bool, error) {
	args := m.Called(ctx, memberID, lectureID)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Bool(1), args.Error(2)
}

func (m *mockCertificateStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Certificate, bool, error) {
	args := m.Called(ctx, id)
	cert, _ := args.Get(0).(*models.Certificate)
	return cert, args.Bool(1), args.Error(2)
}

func (m *mockCertificateStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, updatedAt time.Time) error {
	return m.Called(ctx, id, status, updatedAt).Error(0)
}
