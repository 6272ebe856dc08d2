package repositories

import (
	"context"
	"fmt"

	"github.com/edu-certificate/app/models"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LectureUpserter store nhận được danh sách khóa học seed (Mongo hoặc in-memory)
type LectureUpserter interface {
	Upsert(ctx context.Context, lecture *models.Lecture) error
}

// lectureFile định dạng file seed:
//
//	lectures:
//	  - id: 1
//	    name: "[구름] 자바 스프링"
type lectureFile struct {
	Lectures []struct {
		ID   int64  `yaml:"id"`
		Name string `yaml:"name"`
	} `yaml:"lectures"`
}

// LoadLectureFile đọc danh sách khóa học từ file yaml
func LoadLectureFile(fs afero.Fs, path string) ([]models.Lecture, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc file khóa học: %w", err)
	}

	var data lectureFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("file khóa học không hợp lệ: %w", err)
	}

	lectures := make([]models.Lecture, 0, len(data.Lectures))
	for i, item := range data.Lectures {
		if item.ID <= 0 || item.Name == "" {
			return nil, fmt.Errorf("khóa học thứ %d không hợp lệ: id=%d name=%q", i, item.ID, item.Name)
		}
		lectures = append(lectures, models.Lecture{ID: item.ID, LectureName: item.Name})
	}
	return lectures, nil
}

// SeedLectures ghi lần lượt các khóa học vào store, dừng ở lỗi đầu tiên
func SeedLectures(ctx context.Context, store LectureUpserter, lectures []models.Lecture) (int, error) {
	for i := range lectures {
		if err := store.Upsert(ctx, &lectures[i]); err != nil {
			return i, fmt.Errorf("lỗi ghi khóa học %d: %w", lectures[i].ID, err)
		}
	}
	return len(lectures), nil
}
