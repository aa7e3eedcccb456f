package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sutra/internal/entities"
)

func TestSelectDailyVerse_Deterministic(t *testing.T) {
	texts := catalogTexts(t)
	d := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)

	first := SelectDailyVerse(texts, d)
	second := SelectDailyVerse(texts, d.Add(10*time.Hour))
	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestSelectDailyVerse_Wraparound(t *testing.T) {
	texts := catalogTexts(t)

	total := 0
	for i := range texts {
		total += texts[i].VerseCount()
	}
	require.Greater(t, total, 0)

	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	later := d.AddDate(0, 0, total)
	require.Equal(t, d.Year(), later.Year())

	assert.Equal(t, SelectDailyVerse(texts, d), SelectDailyVerse(texts, later))
	assert.NotEqual(t, SelectDailyVerse(texts, d), SelectDailyVerse(texts, d.AddDate(0, 0, 1)))
}

func TestSelectDailyVerse_TraversalIndex(t *testing.T) {
	texts := []entities.Text{
		{Title: "B", Chapters: []entities.Chapter{
			{Number: 1, Verses: []entities.Verse{{Number: 1, Text: "b1"}}},
		}},
		{Title: "A", Chapters: []entities.Chapter{
			{Number: 2, Verses: []entities.Verse{{Number: 1, Text: "a2"}}},
			{Number: 1, Verses: []entities.Verse{{Number: 1, Text: "a1v1"}, {Number: 0, Text: "a1v0"}}},
		}},
	}

	expect := []string{"a1v0", "a1v1", "a2", "b1", "a1v0"}
	for day, want := range expect {
		date := time.Date(2023, 1, day+1, 12, 0, 0, 0, time.UTC)
		got := SelectDailyVerse(texts, date)
		require.NotNil(t, got)
		assert.Equal(t, want, got.Text, "day %d", day+1)
	}

	got := SelectDailyVerse(texts, time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "A - Chapter 2", got.Source)
	assert.True(t, got.Position.Matches(entities.VersePosition("A", 2, 1)))
}

func TestSelectDailyVerse_LeapYear(t *testing.T) {
	texts := make([]entities.Text, 1)
	texts[0].Title = "L"
	ch := entities.Chapter{Number: 1}
	for i := 1; i <= 400; i++ {
		ch.Verses = append(ch.Verses, entities.Verse{Number: i, Text: "v"})
	}
	texts[0].Chapters = []entities.Chapter{ch}

	leap := SelectDailyVerse(texts, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	plain := SelectDailyVerse(texts, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 366, *leap.Position.VerseNumber)
	assert.Equal(t, 365, *plain.Position.VerseNumber)
}

func TestSelectDailyVerse_UsesDateLocation(t *testing.T) {
	texts := catalogTexts(t)
	tokyo := time.FixedZone("JST", 9*3600)

	// 2024-01-01 23:00 UTC is already 2 January in Tokyo.
	utc := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	assert.Equal(t,
		SelectDailyVerse(texts, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		SelectDailyVerse(texts, utc.In(tokyo)),
	)
}

func TestSelectDailyVerse_Empty(t *testing.T) {
	assert.Nil(t, SelectDailyVerse(nil, time.Now()))
	assert.Nil(t, SelectDailyVerse([]entities.Text{{Title: "Empty"}}, time.Now()))
}
