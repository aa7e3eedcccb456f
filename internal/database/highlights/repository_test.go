package highlights

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *clock.Manual) {
	dbPath := filepath.Join(t.TempDir(), "test_highlights.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Highlight{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	c := clock.NewManual(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC))
	return NewRepository(db, c), c
}

func TestRepository_Set_Upserts(t *testing.T) {
	repo, c := setupTestDB(t)
	ctx := context.Background()

	pos := entities.VersePosition("Heart Sutra", 1, 3)

	_, err := repo.Set(ctx, HighlightInput{Position: pos, Text: "all dharmas", Color: "yellow"})
	require.NoError(t, err)
	c.Advance(time.Minute)
	_, err = repo.Set(ctx, HighlightInput{Position: pos, Text: "all dharmas", Color: "blue"})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	h, err := repo.At(ctx, pos)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, entities.HighlightColorBlue, h.Color)
}

func TestRepository_Set_RejectsUnknownColor(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	pos := entities.VersePosition("Heart Sutra", 1, 3)
	_, err := repo.Set(ctx, HighlightInput{Position: pos, Color: "orange"})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = repo.Add(ctx, HighlightInput{Position: pos, Color: "#ffff00"})
	assert.ErrorIs(t, err, entities.ErrInvalidArgument)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_Set_DefaultsToYellow(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	pos := entities.VersePosition("Heart Sutra", 1, 3)
	h, err := repo.Set(ctx, HighlightInput{Position: pos})
	require.NoError(t, err)
	assert.Equal(t, entities.HighlightColorYellow, h.Color)

	stored, err := repo.At(ctx, pos)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entities.HighlightColorYellow, stored.Color)
}

func TestRepository_PositionScope(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	verse := entities.VersePosition("T", 1, 3)
	chapter := entities.ChapterPosition("T", 1)

	_, err := repo.Set(ctx, HighlightInput{Position: verse, Color: "green"})
	require.NoError(t, err)

	h, err := repo.At(ctx, chapter)
	require.NoError(t, err)
	assert.Nil(t, h)

	// Setting the chapter-level highlight leaves the verse one alone.
	_, err = repo.Set(ctx, HighlightInput{Position: chapter, Color: "pink"})
	require.NoError(t, err)

	h, err = repo.At(ctx, verse)
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, entities.HighlightColorGreen, h.Color)

	inChapter, err := repo.ForChapter(ctx, "T", 1)
	require.NoError(t, err)
	assert.Len(t, inChapter, 2)
}

func TestRepository_Remove(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	pos := entities.VersePosition("T", 2, 1)

	// No-op when nothing is there.
	require.NoError(t, repo.Remove(ctx, pos))

	_, err := repo.Set(ctx, HighlightInput{Position: pos, Color: "purple"})
	require.NoError(t, err)
	require.NoError(t, repo.Remove(ctx, pos))

	h, err := repo.At(ctx, pos)
	require.NoError(t, err)
	assert.Nil(t, h)
}

func TestRepository_AddAndDelete(t *testing.T) {
	repo, c := setupTestDB(t)
	ctx := context.Background()

	pos := entities.VersePosition("T", 1, 1)
	_, err := repo.Add(ctx, HighlightInput{Position: pos, Color: "yellow"})
	require.NoError(t, err)
	c.Advance(time.Second)
	newest, err := repo.Add(ctx, HighlightInput{Position: pos, Color: "Pink"})
	require.NoError(t, err)
	assert.Equal(t, entities.HighlightColorPink, newest.Color)

	h, err := repo.At(ctx, pos)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, h.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newest.ID, all[0].ID)

	require.NoError(t, repo.Delete(ctx, newest.ID))
	assert.ErrorIs(t, repo.Delete(ctx, newest.ID), entities.ErrNotFound)

	refs, err := repo.AllPositions(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, entities.AnnotationHighlight, refs[0].Kind)
}
