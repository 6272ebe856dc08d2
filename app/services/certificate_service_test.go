package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/edu-certificate/app/repositories"
	"github.com/edu-certificate/internal/matcher"
	"github.com/edu-certificate/internal/metrics"
	"github.com/edu-certificate/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"
)

const (
	testMemberID  int64 = 7
	testLectureID int64 = 42
	testLecture         = "[구름] 자바 스프링"
)

var fixedNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

type verifyFixture struct {
	service *CertificateService
	certs   *repositories.MemoryCertificateRepository
	ocr     *mockOCRClient
	storage *mockFileStorage
}

func newVerifyFixture(t *testing.T) *verifyFixture {
	certs := repositories.NewMemoryCertificateRepository()
	lectures := repositories.NewMemoryLectureRepository(models.Lecture{ID: testLectureID, LectureName: testLecture})
	ocr := &mockOCRClient{}
	fileStorage := &mockFileStorage{}
	logger := zaptest.NewLogger(t)

	service := NewCertificateService(certs, lectures, ocr, fileStorage, matcher.NewCertificateMatcher(matcher.DefaultConfig(), logger), logger)
	service.SetClock(func() time.Time { return fixedNow })

	return &verifyFixture{service: service, certs: certs, ocr: ocr, storage: fileStorage}
}

func validRequest() VerifyRequest {
	return VerifyRequest{
		MemberID:    testMemberID,
		LectureID:   testLectureID,
		Image:       []byte("png-bytes"),
		FileName:    "cert.png",
		ContentType: "image/png",
	}
}

func TestCertificateService_Verify_Success(t *testing.T) {
	f := newVerifyFixture(t)
	req := validRequest()

	f.ocr.On("ExtractText", mock.Anything, req.Image, req.FileName).
		Return([]string{"수료증", "[구름] 자바 스프링", "홍길동"}, nil).Once()
	f.storage.On("UploadPrivate", mock.Anything, req.Image, CertificateCategory, req.FileName, req.ContentType).
		Return("certificates/uuid_cert.png", nil).Once()

	cert, err := f.service.Verify(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, cert.ID.IsZero())
	assert.Equal(t, testMemberID, cert.MemberID)
	assert.Equal(t, testLectureID, cert.LectureID)
	assert.Equal(t, "certificates/uuid_cert.png", cert.ImageKey)
	assert.Equal(t, models.OCRStatusSuccess, cert.OCRStatus)
	assert.Equal(t, models.ApprovalPending, cert.ApprovalStatus)
	assert.Equal(t, fixedNow, cert.CreatedAt)
	assert.Equal(t, 1, f.certs.Count())

	f.ocr.AssertExpectations(t)
	f.storage.AssertExpectations(t)
}

func TestCertificateService_Verify_HomoglyphAccepted(t *testing.T) {
	f := newVerifyFixture(t)
	lectures := repositories.NewMemoryLectureRepository(models.Lecture{ID: testLectureID, LectureName: "[구름 x 인프런] 자바 스프링"})
	f.service.lectures = lectures

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"[구름 × 인프런] 자바 스프링"}, nil)
	f.storage.On("UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("certificates/k.png", nil)

	_, err := f.service.Verify(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestCertificateService_Verify_DuplicateRegardlessOfImage(t *testing.T) {
	f := newVerifyFixture(t)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"[구름] 자바 스프링"}, nil).Once()
	f.storage.On("UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("certificates/k.png", nil).Once()

	_, err := f.service.Verify(context.Background(), validRequest())
	require.NoError(t, err)

	// ảnh khác, thậm chí rỗng: vẫn AlreadyExists và không gọi OCR lần nữa
	second := validRequest()
	second.Image = nil
	second.ContentType = "text/plain"

	_, err = f.service.Verify(context.Background(), second)
	assert.ErrorIs(t, err, ErrCertificateAlreadyExists)
	assert.Equal(t, 1, f.certs.Count())
	f.ocr.AssertNumberOfCalls(t, "ExtractText", 1)
	f.storage.AssertNumberOfCalls(t, "UploadPrivate", 1)
}

func TestCertificateService_Verify_LectureNotFound(t *testing.T) {
	f := newVerifyFixture(t)
	req := validRequest()
	req.LectureID = 999

	_, err := f.service.Verify(context.Background(), req)

	assert.ErrorIs(t, err, ErrLectureNotFound)
	f.ocr.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything, mock.Anything)
}

func TestCertificateService_Verify_MismatchNeverSaves(t *testing.T) {
	store := &mockCertificateStore{}
	store.On("ExistsByMemberAndLecture", mock.Anything, testMemberID, testLectureID).Return(false, nil)

	lectures := repositories.NewMemoryLectureRepository(models.Lecture{ID: testLectureID, LectureName: "자바 스프링 풀스택 개발자 과정"})
	ocr := &mockOCRClient{}
	ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).
		Return([]string{"파이썬 백엔드 개발자 과정"}, nil)
	fileStorage := &mockFileStorage{}

	service := NewCertificateService(store, lectures, ocr, fileStorage, matcher.NewCertificateMatcher(matcher.DefaultConfig(), nil), zaptest.NewLogger(t))

	_, err := service.Verify(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrLectureMismatch)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	fileStorage.AssertNotCalled(t, "UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCertificateService_Verify_EmptyOCR(t *testing.T) {
	f := newVerifyFixture(t)
	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return([]string{}, nil)

	_, err := f.service.Verify(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrLectureMismatch)
	assert.Equal(t, 0, f.certs.Count())
}

func TestCertificateService_Verify_InvalidImage(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*VerifyRequest)
	}{
		{name: "Empty", mutate: func(r *VerifyRequest) { r.Image = nil }},
		{name: "Too large", mutate: func(r *VerifyRequest) { r.Image = make([]byte, 11) }},
		{name: "Content type", mutate: func(r *VerifyRequest) { r.ContentType = "image/gif" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newVerifyFixture(t)
			f.service.SetMaxUploadBytes(10)
			req := validRequest()
			tc.mutate(&req)

			_, err := f.service.Verify(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidImage)
			f.ocr.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCertificateService_Verify_InfrastructureErrors(t *testing.T) {
	t.Run("OCR error is not a mismatch", func(t *testing.T) {
		f := newVerifyFixture(t)
		f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("ocr timeout"))

		_, err := f.service.Verify(context.Background(), validRequest())

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrLectureMismatch)
		assert.Equal(t, 0, f.certs.Count())
		f.storage.AssertNotCalled(t, "UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Upload error", func(t *testing.T) {
		f := newVerifyFixture(t)
		f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return([]string{testLecture}, nil)
		f.storage.On("UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("disk full"))

		_, err := f.service.Verify(context.Background(), validRequest())

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrLectureMismatch)
		assert.Equal(t, 0, f.certs.Count())
	})
}

func TestCertificateService_Verify_SaveFailureDeletesUpload(t *testing.T) {
	testCases := []struct {
		name    string
		saveErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:    "Database error",
			saveErr: errors.New("connection reset"),
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrCertificateAlreadyExists)
			},
		},
		{
			name:    "Lost race on unique index",
			saveErr: repositories.ErrDuplicate,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrCertificateAlreadyExists)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &mockCertificateStore{}
			store.On("ExistsByMemberAndLecture", mock.Anything, testMemberID, testLectureID).Return(false, nil)
			store.On("Save", mock.Anything, mock.Anything).Return(tc.saveErr)

			lectures := repositories.NewMemoryLectureRepository(models.Lecture{ID: testLectureID, LectureName: testLecture})
			ocr := &mockOCRClient{}
			ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return([]string{testLecture}, nil)
			fileStorage := &mockFileStorage{}
			fileStorage.On("UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return("certificates/orphan.png", nil)
			fileStorage.On("Delete", mock.Anything, "certificates/orphan.png").Return(nil).Once()

			service := NewCertificateService(store, lectures, ocr, fileStorage, matcher.NewCertificateMatcher(matcher.DefaultConfig(), nil), nil)

			_, err := service.Verify(context.Background(), validRequest())

			tc.check(t, err)
			fileStorage.AssertExpectations(t)
		})
	}
}

func TestCertificateService_Verify_ConcurrentDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	privateStorage, err := storage.NewPrivateStorage(fs, "/data", nil)
	require.NoError(t, err)

	certs := repositories.NewMemoryCertificateRepository()
	lectures := repositories.NewMemoryLectureRepository(models.Lecture{ID: testLectureID, LectureName: testLecture})
	ocr := &mockOCRClient{}
	ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return([]string{testLecture}, nil)

	service := NewCertificateService(certs, lectures, ocr, privateStorage, matcher.NewCertificateMatcher(matcher.DefaultConfig(), nil), nil)

	var succeeded, duplicates atomic.Int32
	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := service.Verify(context.Background(), validRequest())
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ErrCertificateAlreadyExists):
				duplicates.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(9), duplicates.Load())
	assert.Equal(t, 1, certs.Count())

	// ảnh của request thua đã bị xóa
	files, err := afero.ReadDir(fs, "/data/"+CertificateCategory)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestCertificateService_Check(t *testing.T) {
	f := newVerifyFixture(t)
	ctx := context.Background()

	_, found, err := f.service.Check(ctx, testMemberID, testLectureID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, f.certs.Save(ctx, models.NewCertificate(testMemberID, testLectureID, "k", fixedNow)))

	cert, found, err := f.service.Check(ctx, testMemberID, testLectureID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.ApprovalPending, cert.ApprovalStatus)
}

func TestCertificateService_Metrics(t *testing.T) {
	f := newVerifyFixture(t)
	m := metrics.New(prometheus.NewRegistry())
	f.service.SetMetrics(m)

	f.ocr.On("ExtractText", mock.Anything, mock.Anything, mock.Anything).Return([]string{testLecture}, nil)
	f.storage.On("UploadPrivate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("certificates/k.png", nil)

	_, err := f.service.Verify(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = f.service.Verify(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrCertificateAlreadyExists)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Verifications.WithLabelValues(metrics.OutcomeAlreadyExists)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MatchStages.WithLabelValues(string(matcher.StageExact))))
}
