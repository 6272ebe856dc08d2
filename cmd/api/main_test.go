package main

import (
	"context"
	"testing"

	"github.com/edu-certificate/app/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestInitStores_InMemorySeedsLectures(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AppConfig{Lecture: config.LectureCfg{SeedFile: "../../config/lectures.yaml"}}

	certificates, lectures, cleanup := initStores(ctx, cfg, afero.NewOsFs(), zaptest.NewLogger(t))
	defer cleanup()
	require.NotNil(t, certificates)

	for _, id := range []int64{1, 2, 3} {
		lecture, found, err := lectures.FindByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found, "lecture %d", id)
		assert.NotEmpty(t, lecture.LectureName)
	}

	lecture, _, _ := lectures.FindByID(ctx, 1)
	assert.Equal(t, "[구름] 자바 스프링 풀스택 개발자 과정", lecture.LectureName)
}

func TestInitStores_MissingSeedFile(t *testing.T) {
	ctx := context.Background()
	cfg := &config.AppConfig{Lecture: config.LectureCfg{SeedFile: "/lectures.yaml"}}

	_, lectures, cleanup := initStores(ctx, cfg, afero.NewMemMapFs(), zaptest.NewLogger(t))
	defer cleanup()

	_, found, err := lectures.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, found)
}
