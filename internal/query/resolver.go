package query

import (
	"context"

	"github.com/mrlokans/sutra/internal/entities"
)

type HighlightReader interface {
	At(ctx context.Context, pos entities.Position) (*entities.Highlight, error)
	ForChapter(ctx context.Context, title string, chapter int) ([]entities.Highlight, error)
}

type NoteReader interface {
	AtPosition(ctx context.Context, pos entities.Position) ([]entities.Note, error)
	ForChapter(ctx context.Context, title string, chapter int) ([]entities.Note, error)
}

// Resolver answers which annotations apply at a position. Positions are
// compared by exact tuple, so chapter-level and verse-level annotations never
// stand in for one another.
type Resolver struct {
	highlights HighlightReader
	notes      NoteReader
}

func NewResolver(highlights HighlightReader, notes NoteReader) *Resolver {
	return &Resolver{highlights: highlights, notes: notes}
}

// IsHighlighted returns the highlight colour at pos, or nil.
func (r *Resolver) IsHighlighted(ctx context.Context, pos entities.Position) (*entities.HighlightColor, error) {
	h, err := r.highlights.At(ctx, pos)
	if err != nil || h == nil {
		return nil, err
	}
	color := h.Color
	return &color, nil
}

func (r *Resolver) NotesAt(ctx context.Context, pos entities.Position) ([]entities.Note, error) {
	return r.notes.AtPosition(ctx, pos)
}

// VerseAnnotations summarises what a verse carries when a chapter is drawn.
type VerseAnnotations struct {
	Highlight *entities.HighlightColor `json:"highlight,omitempty"`
	NoteCount int                      `json:"note_count"`
}

type ChapterAnnotations struct {
	Highlight *entities.HighlightColor `json:"highlight,omitempty"`
	NoteCount int                      `json:"note_count"`
	Verses    map[int]VerseAnnotations `json:"verses"`
}

// ChapterAnnotations loads every highlight and note inside a chapter with two
// queries and groups them by verse. Entries without a verse number belong to
// the chapter itself.
func (r *Resolver) ChapterAnnotations(ctx context.Context, title string, chapter int) (*ChapterAnnotations, error) {
	highlights, err := r.highlights.ForChapter(ctx, title, chapter)
	if err != nil {
		return nil, err
	}
	notes, err := r.notes.ForChapter(ctx, title, chapter)
	if err != nil {
		return nil, err
	}

	out := &ChapterAnnotations{Verses: make(map[int]VerseAnnotations)}

	// Oldest first, so a later highlight at the same position wins.
	for _, h := range highlights {
		color := h.Color
		if h.VerseNumber == nil {
			out.Highlight = &color
			continue
		}
		va := out.Verses[*h.VerseNumber]
		va.Highlight = &color
		out.Verses[*h.VerseNumber] = va
	}
	for _, n := range notes {
		if n.VerseNumber == nil {
			out.NoteCount++
			continue
		}
		va := out.Verses[*n.VerseNumber]
		va.NoteCount++
		out.Verses[*n.VerseNumber] = va
	}
	return out, nil
}
