package texts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/sutra/internal/catalog"
	"github.com/mrlokans/sutra/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB) {
	dbPath := filepath.Join(t.TempDir(), "test_texts.db")

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Text{}, &entities.Chapter{}, &entities.Verse{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewRepository(db), db
}

func work(title string, chapters ...catalog.Chapter) catalog.Work {
	return catalog.Work{Title: title, Category: "Sutra", Chapters: chapters}
}

func chapter(number int, verses ...string) catalog.Chapter {
	ch := catalog.Chapter{Number: number, Title: "Chapter"}
	for i, v := range verses {
		ch.Verses = append(ch.Verses, catalog.Verse{Number: i + 1, Text: v})
	}
	return ch
}

func TestSeedIfMissing_Idempotent(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	works, err := catalog.Load()
	require.NoError(t, err)

	first, err := repo.SeedIfMissing(ctx, works)
	require.NoError(t, err)
	assert.Len(t, first.Inserted, len(works))
	assert.Empty(t, first.Failed)

	once, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Greater(t, once, int64(0))

	for i := 0; i < 3; i++ {
		again, err := repo.SeedIfMissing(ctx, works)
		require.NoError(t, err)
		assert.Empty(t, again.Inserted)
		assert.Len(t, again.Skipped, len(works))
	}

	after, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Equal(t, once, after)
}

func TestSeedIfMissing_PerWork(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	a := work("A", chapter(1, "a1"))
	b := work("B", chapter(1, "b1", "b2"))

	_, err := repo.SeedIfMissing(ctx, []catalog.Work{a})
	require.NoError(t, err)

	result, err := repo.SeedIfMissing(ctx, []catalog.Work{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, result.Inserted)
	assert.Equal(t, []string{"A"}, result.Skipped)

	count, err := repo.CountVerses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSeedIfMissing_AliasPreventsDuplicate(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	// Stored under the older title with the original-script suffix.
	_, err := repo.SeedIfMissing(ctx, []catalog.Work{work("Heart Sutra (心经)", chapter(1, "x"))})
	require.NoError(t, err)

	renamed := work("Heart Sutra", chapter(1, "x"))
	renamed.Aliases = []string{"Heart Sutra (心经)"}

	result, err := repo.SeedIfMissing(ctx, []catalog.Work{renamed})
	require.NoError(t, err)
	assert.Empty(t, result.Inserted)
	assert.Equal(t, []string{"Heart Sutra"}, result.Skipped)

	texts, err := repo.ListTexts(ctx, TextFilter{})
	require.NoError(t, err)
	assert.Len(t, texts, 1)
}

func TestSeedIfMissing_FailureKeepsOtherWorks(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	broken := work("Broken", chapter(1, "ok"), chapter(1, "duplicate number"))

	result, err := repo.SeedIfMissing(ctx, []catalog.Work{
		work("First", chapter(1, "f")),
		broken,
		work("Last", chapter(1, "l")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Last"}, result.Inserted)
	assert.Equal(t, []string{"Broken"}, result.Failed)

	text, err := repo.GetText(ctx, "Broken")
	require.NoError(t, err)
	assert.Nil(t, text)

	var chapters int64
	db.Model(&entities.Chapter{}).Count(&chapters)
	assert.Equal(t, int64(2), chapters)
}

func TestGetChapter(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	w := work("T", catalog.Chapter{
		Number: 1,
		Title:  "One",
		Verses: []catalog.Verse{
			{Number: 2, Text: "second"},
			{Number: 0, Text: "preamble"},
			{Number: 1, Text: "first"},
		},
	})
	_, err := repo.SeedIfMissing(ctx, []catalog.Work{w})
	require.NoError(t, err)

	t.Run("verses ordered by number", func(t *testing.T) {
		ch, err := repo.GetChapter(ctx, "T", 1)
		require.NoError(t, err)
		require.NotNil(t, ch)
		assert.Equal(t, "One", ch.Title)
		require.Len(t, ch.Verses, 3)
		assert.Equal(t, []int{0, 1, 2}, []int{ch.Verses[0].Number, ch.Verses[1].Number, ch.Verses[2].Number})
	})

	t.Run("missing chapter is nil", func(t *testing.T) {
		ch, err := repo.GetChapter(ctx, "T", 9)
		assert.NoError(t, err)
		assert.Nil(t, ch)
	})

	t.Run("missing text is nil", func(t *testing.T) {
		ch, err := repo.GetChapter(ctx, "Nope", 1)
		assert.NoError(t, err)
		assert.Nil(t, ch)
	})
}

func TestSiblingChapters_NumericOrder(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.SeedIfMissing(ctx, []catalog.Work{
		work("X", chapter(3, "c"), chapter(1, "a"), chapter(2, "b")),
	})
	require.NoError(t, err)

	s, err := repo.SiblingChapters(ctx, "X", 2)
	require.NoError(t, err)
	require.NotNil(t, s.Previous)
	require.NotNil(t, s.Next)
	assert.Equal(t, 1, s.Previous.Number)
	assert.Equal(t, 3, s.Next.Number)

	first, err := repo.SiblingChapters(ctx, "X", 1)
	require.NoError(t, err)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)
	assert.Equal(t, 2, first.Next.Number)

	last, err := repo.SiblingChapters(ctx, "X", 3)
	require.NoError(t, err)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Equal(t, 2, last.Previous.Number)

	missing, err := repo.SiblingChapters(ctx, "X", 7)
	require.NoError(t, err)
	assert.Nil(t, missing.Previous)
	assert.Nil(t, missing.Next)

	numbers, err := repo.ChapterNumbers(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, numbers)
}

func TestListTexts_Filter(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	works, err := catalog.Load()
	require.NoError(t, err)
	_, err = repo.SeedIfMissing(ctx, works)
	require.NoError(t, err)

	all, err := repo.ListTexts(ctx, TextFilter{})
	require.NoError(t, err)
	require.Len(t, all, len(works))
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Title, all[i].Title)
	}

	byTitle, err := repo.ListTexts(ctx, TextFilter{TitleContains: "SUTRA"})
	require.NoError(t, err)
	titles := make([]string, len(byTitle))
	for i, t := range byTitle {
		titles[i] = t.Title
	}
	assert.Equal(t, []string{"Diamond Sutra", "Heart Sutra"}, titles)

	byAuthor, err := repo.ListTexts(ctx, TextFilter{AuthorContains: "xuanzang"})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Heart Sutra", byAuthor[0].Title)

	byCategory, err := repo.ListTexts(ctx, TextFilter{Category: "Teaching"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Four Noble Truths", byCategory[0].Title)

	none, err := repo.ListTexts(ctx, TextFilter{Category: "teaching"})
	require.NoError(t, err)
	assert.Empty(t, none)

	categories, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sutra", "Sutta", "Teaching"}, categories)
}

func TestAllTexts_TraversalOrder(t *testing.T) {
	repo, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.SeedIfMissing(ctx, []catalog.Work{
		work("B", chapter(2, "b2"), chapter(1, "b1")),
		work("A", chapter(1, "a1")),
	})
	require.NoError(t, err)

	texts, err := repo.AllTexts(ctx)
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "A", texts[0].Title)
	assert.Equal(t, "B", texts[1].Title)
	assert.Equal(t, 1, texts[1].Chapters[0].Number)
	assert.Equal(t, "b1", texts[1].Chapters[0].Verses[0].Text)
}

func TestDeleteText_Cascades(t *testing.T) {
	repo, db := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.SeedIfMissing(ctx, []catalog.Work{
		work("Gone", chapter(1, "x", "y")),
		work("Kept", chapter(1, "z")),
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteText(ctx, "Gone"))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Texts: 1, Chapters: 1, Verses: 1}, stats)

	var orphans int64
	db.Model(&entities.Verse{}).Where("chapter_id NOT IN (?)", db.Model(&entities.Chapter{}).Select("id")).Count(&orphans)
	assert.Zero(t, orphans)

	err = repo.DeleteText(ctx, "Gone")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	// A deleted work is reinserted by the next seed.
	result, err := repo.SeedIfMissing(ctx, []catalog.Work{work("Gone", chapter(1, "x", "y"))})
	require.NoError(t, err)
	assert.Equal(t, []string{"Gone"}, result.Inserted)
}
