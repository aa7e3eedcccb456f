package query

import (
	"fmt"
	"time"

	"github.com/mrlokans/sutra/internal/entities"
)

// DailyVerse is the verse selected for a calendar day.
type DailyVerse struct {
	Text     string            `json:"text"`
	Source   string            `json:"source"`
	Position entities.Position `json:"position"`
	Verse    entities.Verse    `json:"verse"`
}

// SelectDailyVerse picks verse (dayOfYear-1) mod N from all verses in
// traversal order, where dayOfYear is taken in date's own location. It
// returns nil when there are no verses. Adding or removing texts shifts the
// selection for every later day.
func SelectDailyVerse(texts []entities.Text, date time.Time) *DailyVerse {
	ordered := inTraversalOrder(texts)

	total := 0
	for i := range ordered {
		total += ordered[i].VerseCount()
	}
	if total == 0 {
		return nil
	}

	index := (date.YearDay() - 1) % total
	for _, text := range ordered {
		for _, ch := range text.Chapters {
			if index >= len(ch.Verses) {
				index -= len(ch.Verses)
				continue
			}
			v := ch.Verses[index]
			return &DailyVerse{
				Text:     v.Text,
				Source:   SourceLabel(text.Title, ch.Number),
				Position: entities.VersePosition(text.Title, ch.Number, v.Number),
				Verse:    v,
			}
		}
	}
	return nil
}

// SourceLabel formats the attribution shown under a verse.
func SourceLabel(title string, chapter int) string {
	return fmt.Sprintf("%s - Chapter %d", title, chapter)
}
