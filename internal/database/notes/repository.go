// Package notes stores reader notes. Several notes may exist for the same
// verse; each keeps the verse text as it read when the note was written.
package notes

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/database"
	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles note database operations.
type Repository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewRepository creates a new notes repository.
func NewRepository(db *gorm.DB, c clock.Clock) *Repository {
	return &Repository{db: db, clock: c}
}

type NoteInput struct {
	Position entities.Position
	Text     string // verse snapshot
	Content  string
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return &entities.ValidationError{Field: "content", Message: "must not be empty"}
	}
	return nil
}

// Add inserts a note with CreatedAt and UpdatedAt both set to now.
func (r *Repository) Add(ctx context.Context, in NoteInput) (*entities.Note, error) {
	if err := in.Position.Validate(); err != nil {
		return nil, err
	}
	if err := validateContent(in.Content); err != nil {
		return nil, err
	}

	now := r.clock.Now().UTC()
	note := &entities.Note{
		Text:          in.Text,
		Content:       in.Content,
		TextTitle:     in.Position.TextTitle,
		ChapterNumber: in.Position.ChapterNumber,
		VerseNumber:   in.Position.VerseNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, entities.WrapPersistence("add note", err)
	}
	return note, nil
}

// Update replaces the content of a note and bumps UpdatedAt.
func (r *Repository) Update(ctx context.Context, id, content string) (*entities.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&entities.Note{}).Where("id = ?", id).Updates(map[string]any{
		"content":    content,
		"updated_at": r.clock.Now().UTC(),
	})
	if result.Error != nil {
		return nil, entities.WrapPersistence("update note", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, &entities.NotFoundError{Resource: "note", ID: id}
	}
	return r.Get(ctx, id)
}

func (r *Repository) Get(ctx context.Context, id string) (*entities.Note, error) {
	var note entities.Note
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &entities.NotFoundError{Resource: "note", ID: id}
	}
	if err != nil {
		return nil, entities.WrapPersistence("get note", err)
	}
	return &note, nil
}

// Delete removes a note. An unknown id is reported as not found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Note{})
	if result.Error != nil {
		return entities.WrapPersistence("delete note", result.Error)
	}
	if result.RowsAffected == 0 {
		return &entities.NotFoundError{Resource: "note", ID: id}
	}
	return nil
}

// List returns notes most recently edited first. A non-empty query keeps
// notes whose content or verse snapshot contains it, ignoring case.
func (r *Repository) List(ctx context.Context, query string) ([]entities.Note, error) {
	var all []entities.Note
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&all).Error; err != nil {
		return nil, entities.WrapPersistence("list notes", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return all, nil
	}

	notes := make([]entities.Note, 0, len(all))
	for _, n := range all {
		if strings.Contains(strings.ToLower(n.Content), needle) ||
			strings.Contains(strings.ToLower(n.Text), needle) {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

// AtPosition returns the notes at exactly pos, oldest first.
func (r *Repository) AtPosition(ctx context.Context, pos entities.Position) ([]entities.Note, error) {
	var notes []entities.Note
	err := database.WherePosition(r.db.WithContext(ctx), pos).Order("created_at ASC").Find(&notes).Error
	if err != nil {
		return nil, entities.WrapPersistence("find notes", err)
	}
	return notes, nil
}

// ForChapter returns every note inside a chapter, chapter-level and
// verse-level alike.
func (r *Repository) ForChapter(ctx context.Context, title string, chapter int) ([]entities.Note, error) {
	var notes []entities.Note
	err := database.WhereChapter(r.db.WithContext(ctx), title, chapter).Order("created_at ASC").Find(&notes).Error
	if err != nil {
		return nil, entities.WrapPersistence("find chapter notes", err)
	}
	return notes, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Note{}).Count(&count).Error; err != nil {
		return 0, entities.WrapPersistence("count notes", err)
	}
	return count, nil
}

// AllPositions lists every note by id and position.
func (r *Repository) AllPositions(ctx context.Context) ([]entities.AnnotationRef, error) {
	var notes []entities.Note
	err := r.db.WithContext(ctx).
		Select("id", "text_title", "chapter_number", "verse_number").
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, entities.WrapPersistence("list note positions", err)
	}

	refs := make([]entities.AnnotationRef, len(notes))
	for i, n := range notes {
		refs[i] = entities.AnnotationRef{Kind: entities.AnnotationNote, ID: n.ID, Position: n.Position()}
	}
	return refs, nil
}
