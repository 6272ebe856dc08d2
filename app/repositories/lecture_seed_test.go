package repositories

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLectureFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/lectures.yaml", []byte(`
lectures:
  - id: 1
    name: "[구름] 자바 스프링"
  - id: 2
    name: "Spring-Boot 'JPA' 과정"
`), 0o644))

	lectures, err := LoadLectureFile(fs, "/lectures.yaml")
	require.NoError(t, err)
	require.Len(t, lectures, 2)
	assert.Equal(t, int64(1), lectures[0].ID)
	assert.Equal(t, "[구름] 자바 스프링", lectures[0].LectureName)

	repo := NewMemoryLectureRepository()
	n, err := SeedLectures(context.Background(), repo, lectures)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, found, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Spring-Boot 'JPA' 과정", got.LectureName)
}

func TestLoadLectureFile_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadLectureFile(fs, "/missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("lectures: [1, 2"), 0o644))
	_, err = LoadLectureFile(fs, "/bad.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/invalid.yaml", []byte("lectures:\n  - id: 0\n    name: x\n"), 0o644))
	_, err = LoadLectureFile(fs, "/invalid.yaml")
	assert.Error(t, err)
}
