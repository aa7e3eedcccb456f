// Package bookmarks stores reader bookmarks. Bookmarks are insert-only: any
// number may exist for the same position.
package bookmarks

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/database"
	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles bookmark database operations.
type Repository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB, c clock.Clock) *Repository {
	return &Repository{db: db, clock: c}
}

// BookmarkInput describes a new bookmark. Text is the snapshot shown in the
// bookmark list, usually the chapter title.
type BookmarkInput struct {
	Position entities.Position
	Text     string
}

// Add inserts a bookmark stamped with the current time.
func (r *Repository) Add(ctx context.Context, in BookmarkInput) (*entities.Bookmark, error) {
	if err := in.Position.Validate(); err != nil {
		return nil, err
	}

	bookmark := &entities.Bookmark{
		Text:          in.Text,
		TextTitle:     in.Position.TextTitle,
		ChapterNumber: in.Position.ChapterNumber,
		VerseNumber:   in.Position.VerseNumber,
		CreatedAt:     r.clock.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(bookmark).Error; err != nil {
		return nil, entities.WrapPersistence("add bookmark", err)
	}
	return bookmark, nil
}

// List returns bookmarks newest first. A non-empty query keeps only bookmarks
// whose text title or snapshot contains it, ignoring case.
func (r *Repository) List(ctx context.Context, query string) ([]entities.Bookmark, error) {
	var all []entities.Bookmark
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&all).Error; err != nil {
		return nil, entities.WrapPersistence("list bookmarks", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return all, nil
	}

	bookmarks := make([]entities.Bookmark, 0, len(all))
	for _, b := range all {
		if strings.Contains(strings.ToLower(b.TextTitle), needle) ||
			strings.Contains(strings.ToLower(b.Text), needle) {
			bookmarks = append(bookmarks, b)
		}
	}
	return bookmarks, nil
}

// At returns every bookmark at exactly pos.
func (r *Repository) At(ctx context.Context, pos entities.Position) ([]entities.Bookmark, error) {
	var bookmarks []entities.Bookmark
	err := database.WherePosition(r.db.WithContext(ctx), pos).Order("created_at DESC").Find(&bookmarks).Error
	if err != nil {
		return nil, entities.WrapPersistence("find bookmarks", err)
	}
	return bookmarks, nil
}

// Delete removes a bookmark. An unknown id is reported as not found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Bookmark{})
	if result.Error != nil {
		return entities.WrapPersistence("delete bookmark", result.Error)
	}
	if result.RowsAffected == 0 {
		return &entities.NotFoundError{Resource: "bookmark", ID: id}
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Bookmark{}).Count(&count).Error; err != nil {
		return 0, entities.WrapPersistence("count bookmarks", err)
	}
	return count, nil
}

// AllPositions lists every bookmark by id and position.
func (r *Repository) AllPositions(ctx context.Context) ([]entities.AnnotationRef, error) {
	var bookmarks []entities.Bookmark
	err := r.db.WithContext(ctx).
		Select("id", "text_title", "chapter_number", "verse_number").
		Order("created_at ASC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, entities.WrapPersistence("list bookmark positions", err)
	}

	refs := make([]entities.AnnotationRef, len(bookmarks))
	for i, b := range bookmarks {
		refs[i] = entities.AnnotationRef{Kind: entities.AnnotationBookmark, ID: b.ID, Position: b.Position()}
	}
	return refs, nil
}
