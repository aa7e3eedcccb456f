// Package highlights stores verse highlights. Set keeps at most one
// highlight per position by replacing whatever was there.
package highlights

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/database"
	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles highlight database operations.
type Repository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewRepository creates a new highlights repository.
func NewRepository(db *gorm.DB, c clock.Clock) *Repository {
	return &Repository{db: db, clock: c}
}

type HighlightInput struct {
	Position entities.Position
	Text     string
	Color    string
}

func (r *Repository) build(in HighlightInput) (*entities.Highlight, error) {
	if err := in.Position.Validate(); err != nil {
		return nil, err
	}
	color := entities.DefaultHighlightColor
	if strings.TrimSpace(in.Color) != "" {
		parsed, err := entities.ParseHighlightColor(in.Color)
		if err != nil {
			return nil, err
		}
		color = parsed
	}
	return &entities.Highlight{
		Text:          in.Text,
		TextTitle:     in.Position.TextTitle,
		ChapterNumber: in.Position.ChapterNumber,
		VerseNumber:   in.Position.VerseNumber,
		Color:         color,
		CreatedAt:     r.clock.Now().UTC(),
	}, nil
}

// Set replaces any highlight at the position with a new one in a single
// transaction.
func (r *Repository) Set(ctx context.Context, in HighlightInput) (*entities.Highlight, error) {
	highlight, err := r.build(in)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := database.WherePosition(tx, in.Position).Delete(&entities.Highlight{}).Error; err != nil {
			return err
		}
		return tx.Create(highlight).Error
	})
	if err != nil {
		return nil, entities.WrapPersistence("set highlight", err)
	}
	return highlight, nil
}

// Add inserts without replacing. Prefer Set for reader actions.
func (r *Repository) Add(ctx context.Context, in HighlightInput) (*entities.Highlight, error) {
	highlight, err := r.build(in)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(highlight).Error; err != nil {
		return nil, entities.WrapPersistence("add highlight", err)
	}
	return highlight, nil
}

// Remove deletes the highlight at pos. Removing where nothing is highlighted
// is not an error.
func (r *Repository) Remove(ctx context.Context, pos entities.Position) error {
	err := database.WherePosition(r.db.WithContext(ctx), pos).Delete(&entities.Highlight{}).Error
	return entities.WrapPersistence("remove highlight", err)
}

// Delete removes a highlight by id. An unknown id is reported as not found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Highlight{})
	if result.Error != nil {
		return entities.WrapPersistence("delete highlight", result.Error)
	}
	if result.RowsAffected == 0 {
		return &entities.NotFoundError{Resource: "highlight", ID: id}
	}
	return nil
}

// At returns the highlight at exactly pos, or nil. If Add left several, the
// newest wins.
func (r *Repository) At(ctx context.Context, pos entities.Position) (*entities.Highlight, error) {
	var highlight entities.Highlight
	err := database.WherePosition(r.db.WithContext(ctx), pos).Order("created_at DESC").First(&highlight).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.WrapPersistence("find highlight", err)
	}
	return &highlight, nil
}

// ForChapter returns all highlights inside a chapter, oldest first.
func (r *Repository) ForChapter(ctx context.Context, title string, chapter int) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	err := database.WhereChapter(r.db.WithContext(ctx), title, chapter).Order("created_at ASC").Find(&highlights).Error
	if err != nil {
		return nil, entities.WrapPersistence("find chapter highlights", err)
	}
	return highlights, nil
}

// List returns all highlights, newest first.
func (r *Repository) List(ctx context.Context) ([]entities.Highlight, error) {
	var highlights []entities.Highlight
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&highlights).Error; err != nil {
		return nil, entities.WrapPersistence("list highlights", err)
	}
	return highlights, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Highlight{}).Count(&count).Error; err != nil {
		return 0, entities.WrapPersistence("count highlights", err)
	}
	return count, nil
}

// AllPositions lists every highlight by id and position.
func (r *Repository) AllPositions(ctx context.Context) ([]entities.AnnotationRef, error) {
	var highlights []entities.Highlight
	err := r.db.WithContext(ctx).
		Select("id", "text_title", "chapter_number", "verse_number").
		Order("created_at ASC").
		Find(&highlights).Error
	if err != nil {
		return nil, entities.WrapPersistence("list highlight positions", err)
	}

	refs := make([]entities.AnnotationRef, len(highlights))
	for i, h := range highlights {
		refs[i] = entities.AnnotationRef{Kind: entities.AnnotationHighlight, ID: h.ID, Position: h.Position()}
	}
	return refs, nil
}
