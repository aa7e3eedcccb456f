package query

import (
	"sort"

	"github.com/mrlokans/sutra/internal/entities"
)

// inTraversalOrder returns texts sorted by title with chapters and verses
// sorted by number. The input slice is not modified.
func inTraversalOrder(texts []entities.Text) []entities.Text {
	ordered := make([]entities.Text, len(texts))
	for i, t := range texts {
		t.Chapters = t.SortedChapters()
		for j := range t.Chapters {
			t.Chapters[j].Verses = t.Chapters[j].SortedVerses()
		}
		ordered[i] = t
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Title < ordered[j].Title
	})
	return ordered
}
