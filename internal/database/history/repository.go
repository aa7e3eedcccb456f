// Package history tracks reading progress: one row per (text, chapter),
// refreshed each time the chapter is opened.
package history

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles reading history database operations.
type Repository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB, c clock.Clock) *Repository {
	return &Repository{db: db, clock: c}
}

// Record marks a chapter as read now. An existing row for the chapter has
// its LastReadAt moved forward; otherwise a new row is created.
func (r *Repository) Record(ctx context.Context, title string, chapter int) (*entities.ReadingHistory, error) {
	if err := entities.ChapterPosition(title, chapter).Validate(); err != nil {
		return nil, err
	}

	now := r.clock.Now().UTC()
	var entry entities.ReadingHistory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("text_title = ? AND chapter_number = ?", title, chapter).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = entities.ReadingHistory{
				TextTitle:     title,
				ChapterNumber: chapter,
				LastReadAt:    now,
			}
			return tx.Create(&entry).Error
		}
		if err != nil {
			return err
		}

		entry.LastReadAt = now
		return tx.Model(&entry).Update("last_read_at", now).Error
	})
	if err != nil {
		return nil, entities.WrapPersistence("record reading progress", err)
	}
	return &entry, nil
}

// List returns reading history, most recent first.
func (r *Repository) List(ctx context.Context) ([]entities.ReadingHistory, error) {
	var entries []entities.ReadingHistory
	if err := r.db.WithContext(ctx).Order("last_read_at DESC").Find(&entries).Error; err != nil {
		return nil, entities.WrapPersistence("list reading history", err)
	}
	return entries, nil
}

// Latest returns the most recently read chapter, or nil before anything has
// been read.
func (r *Repository) Latest(ctx context.Context) (*entities.ReadingHistory, error) {
	var entry entities.ReadingHistory
	err := r.db.WithContext(ctx).Order("last_read_at DESC").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.WrapPersistence("latest reading history", err)
	}
	return &entry, nil
}

// Delete removes a history entry. An unknown id is reported as not found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ReadingHistory{})
	if result.Error != nil {
		return entities.WrapPersistence("delete reading history", result.Error)
	}
	if result.RowsAffected == 0 {
		return &entities.NotFoundError{Resource: "reading history", ID: id}
	}
	return nil
}

// AllPositions lists every history entry by id and position.
func (r *Repository) AllPositions(ctx context.Context) ([]entities.AnnotationRef, error) {
	var entries []entities.ReadingHistory
	if err := r.db.WithContext(ctx).Order("last_read_at ASC").Find(&entries).Error; err != nil {
		return nil, entities.WrapPersistence("list history positions", err)
	}

	refs := make([]entities.AnnotationRef, len(entries))
	for i, e := range entries {
		refs[i] = entities.AnnotationRef{Kind: entities.AnnotationHistory, ID: e.ID, Position: e.Position()}
	}
	return refs, nil
}
