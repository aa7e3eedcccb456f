package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/sutra/internal/entities"
)

type memoryAnnotations struct {
	highlights []entities.Highlight
	notes      []entities.Note
}

func (m *memoryAnnotations) At(_ context.Context, pos entities.Position) (*entities.Highlight, error) {
	for i := len(m.highlights) - 1; i >= 0; i-- {
		if m.highlights[i].Position().Matches(pos) {
			h := m.highlights[i]
			return &h, nil
		}
	}
	return nil, nil
}

func (m *memoryAnnotations) AtPosition(_ context.Context, pos entities.Position) ([]entities.Note, error) {
	var out []entities.Note
	for _, n := range m.notes {
		if n.Position().Matches(pos) {
			out = append(out, n)
		}
	}
	return out, nil
}

type highlightReader struct{ *memoryAnnotations }

func (h highlightReader) ForChapter(_ context.Context, title string, chapter int) ([]entities.Highlight, error) {
	var out []entities.Highlight
	for _, x := range h.highlights {
		if x.TextTitle == title && x.ChapterNumber == chapter {
			out = append(out, x)
		}
	}
	return out, nil
}

type noteReader struct{ *memoryAnnotations }

func (n noteReader) ForChapter(_ context.Context, title string, chapter int) ([]entities.Note, error) {
	var out []entities.Note
	for _, x := range n.notes {
		if x.TextTitle == title && x.ChapterNumber == chapter {
			out = append(out, x)
		}
	}
	return out, nil
}

func newMemoryResolver(m *memoryAnnotations) *Resolver {
	return NewResolver(highlightReader{m}, noteReader{m})
}

func highlightAt(pos entities.Position, color entities.HighlightColor) entities.Highlight {
	return entities.Highlight{TextTitle: pos.TextTitle, ChapterNumber: pos.ChapterNumber, VerseNumber: pos.VerseNumber, Color: color}
}

func noteAt(pos entities.Position, content string) entities.Note {
	return entities.Note{TextTitle: pos.TextTitle, ChapterNumber: pos.ChapterNumber, VerseNumber: pos.VerseNumber, Content: content}
}

func TestResolver_IsHighlighted_PositionScoped(t *testing.T) {
	ctx := context.Background()
	verse := entities.VersePosition("T", 1, 3)
	chapter := entities.ChapterPosition("T", 1)

	t.Run("verse highlight not seen at chapter level", func(t *testing.T) {
		r := newMemoryResolver(&memoryAnnotations{
			highlights: []entities.Highlight{highlightAt(verse, entities.HighlightColorYellow)},
		})

		color, err := r.IsHighlighted(ctx, chapter)
		require.NoError(t, err)
		assert.Nil(t, color)

		color, err = r.IsHighlighted(ctx, verse)
		require.NoError(t, err)
		require.NotNil(t, color)
		assert.Equal(t, entities.HighlightColorYellow, *color)
	})

	t.Run("chapter highlight not seen at verse level", func(t *testing.T) {
		r := newMemoryResolver(&memoryAnnotations{
			highlights: []entities.Highlight{highlightAt(chapter, entities.HighlightColorBlue)},
		})

		color, err := r.IsHighlighted(ctx, verse)
		require.NoError(t, err)
		assert.Nil(t, color)
	})
}

func TestResolver_NotesAt(t *testing.T) {
	ctx := context.Background()
	m := &memoryAnnotations{notes: []entities.Note{
		noteAt(entities.VersePosition("T", 1, 3), "a"),
		noteAt(entities.VersePosition("T", 1, 3), "b"),
		noteAt(entities.VersePosition("T", 1, 4), "c"),
		noteAt(entities.ChapterPosition("T", 1), "d"),
	}}
	r := newMemoryResolver(m)

	notes, err := r.NotesAt(ctx, entities.VersePosition("T", 1, 3))
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	notes, err = r.NotesAt(ctx, entities.ChapterPosition("T", 1))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "d", notes[0].Content)
}

func TestResolver_ChapterAnnotations(t *testing.T) {
	ctx := context.Background()
	m := &memoryAnnotations{
		highlights: []entities.Highlight{
			highlightAt(entities.VersePosition("T", 1, 1), entities.HighlightColorGreen),
			highlightAt(entities.VersePosition("T", 1, 1), entities.HighlightColorPurple),
			highlightAt(entities.ChapterPosition("T", 1), entities.HighlightColorPink),
			highlightAt(entities.VersePosition("T", 2, 1), entities.HighlightColorBlue),
		},
		notes: []entities.Note{
			noteAt(entities.VersePosition("T", 1, 2), "x"),
			noteAt(entities.VersePosition("T", 1, 2), "y"),
			noteAt(entities.ChapterPosition("T", 1), "z"),
		},
	}
	r := newMemoryResolver(m)

	got, err := r.ChapterAnnotations(ctx, "T", 1)
	require.NoError(t, err)

	require.NotNil(t, got.Highlight)
	assert.Equal(t, entities.HighlightColorPink, *got.Highlight)
	assert.Equal(t, 1, got.NoteCount)

	require.Len(t, got.Verses, 2)
	require.NotNil(t, got.Verses[1].Highlight)
	assert.Equal(t, entities.HighlightColorPurple, *got.Verses[1].Highlight)
	assert.Zero(t, got.Verses[1].NoteCount)
	assert.Nil(t, got.Verses[2].Highlight)
	assert.Equal(t, 2, got.Verses[2].NoteCount)
}
