// Package texts provides the document store: idempotent seeding of the
// catalog and read-only hierarchical lookup of texts, chapters and verses.
//
// Lookups of a text or chapter that does not exist return nil without an
// error. Callers treat a missing chapter as a normal state to display.
//
// # Usage
//
//	repo := texts.NewRepository(db)
//	result, err := repo.SeedIfMissing(ctx, works)
//	chapter, err := repo.GetChapter(ctx, "Heart Sutra", 1)
package texts

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/catalog"
	"github.com/mrlokans/sutra/internal/entities"
)

// Repository handles all document database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new texts repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SeedResult lists catalog titles by outcome.
type SeedResult struct {
	Inserted []string `json:"inserted"`
	Skipped  []string `json:"skipped"`
	Failed   []string `json:"failed"`
}

// TextFilter narrows ListTexts. Empty fields match everything.
type TextFilter struct {
	TitleContains  string
	AuthorContains string
	Category       string
}

// Siblings holds the neighbours of a chapter by number. Either may be nil.
type Siblings struct {
	Previous *entities.Chapter `json:"previous,omitempty"`
	Next     *entities.Chapter `json:"next,omitempty"`
}

type Stats struct {
	Texts    int64 `json:"texts"`
	Chapters int64 `json:"chapters"`
	Verses   int64 `json:"verses"`
}

// SeedIfMissing inserts every work whose title and aliases are all absent.
// Each work is written in its own transaction, so a failure leaves earlier
// works committed and the next call retries only what is still missing. The
// returned error is set only when the presence check itself fails.
func (r *Repository) SeedIfMissing(ctx context.Context, works []catalog.Work) (SeedResult, error) {
	var result SeedResult

	present, err := r.presentTitles(ctx)
	if err != nil {
		return result, entities.WrapPersistence("load existing titles", err)
	}

	for _, work := range works {
		if name, ok := findPresent(work, present); ok {
			if name != work.Title {
				log.Printf("Seed: %q already present as %q, skipping", work.Title, name)
			}
			result.Skipped = append(result.Skipped, work.Title)
			continue
		}

		text := work.ToText()
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(text).Error
		})
		if err != nil {
			log.Printf("Seed: failed to insert %q: %v", work.Title, err)
			result.Failed = append(result.Failed, work.Title)
			continue
		}

		log.Printf("Seed: inserted %q (%d chapters, %d verses)", work.Title, len(text.Chapters), text.VerseCount())
		result.Inserted = append(result.Inserted, work.Title)
		present[work.Title] = true
	}

	return result, nil
}

func (r *Repository) presentTitles(ctx context.Context) (map[string]bool, error) {
	var titles []string
	if err := r.db.WithContext(ctx).Model(&entities.Text{}).Pluck("title", &titles).Error; err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(titles))
	for _, t := range titles {
		present[t] = true
	}
	return present, nil
}

func findPresent(work catalog.Work, present map[string]bool) (string, bool) {
	for _, name := range work.Names() {
		if present[name] {
			return name, true
		}
	}
	return "", false
}

// ListTexts returns texts sorted by title with their chapters (without
// verses). Title and author matching is a case-insensitive substring match;
// category must match exactly.
func (r *Repository) ListTexts(ctx context.Context, filter TextFilter) ([]entities.Text, error) {
	query := r.db.WithContext(ctx).Preload("Chapters", orderByNumber)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var all []entities.Text
	if err := query.Order("title ASC").Find(&all).Error; err != nil {
		return nil, entities.WrapPersistence("list texts", err)
	}

	titleNeedle := strings.ToLower(strings.TrimSpace(filter.TitleContains))
	authorNeedle := strings.ToLower(strings.TrimSpace(filter.AuthorContains))

	texts := make([]entities.Text, 0, len(all))
	for _, t := range all {
		if titleNeedle != "" && !strings.Contains(strings.ToLower(t.Title), titleNeedle) {
			continue
		}
		if authorNeedle != "" {
			if t.Author == nil || !strings.Contains(strings.ToLower(*t.Author), authorNeedle) {
				continue
			}
		}
		texts = append(texts, t)
	}

	// SQLite orders by byte value; keep the final order independent of collation.
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].Title < texts[j].Title
	})
	return texts, nil
}

// Categories returns the distinct categories in the library, sorted.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&entities.Text{}).
		Distinct("category").Order("category ASC").Pluck("category", &categories).Error
	if err != nil {
		return nil, entities.WrapPersistence("list categories", err)
	}
	return categories, nil
}

// GetText returns the full text tree, or nil if no text has that title.
func (r *Repository) GetText(ctx context.Context, title string) (*entities.Text, error) {
	var text entities.Text
	err := r.db.WithContext(ctx).
		Preload("Chapters", orderByNumber).
		Preload("Chapters.Verses", orderByNumber).
		Where("title = ?", title).
		First(&text).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.WrapPersistence("get text", err)
	}
	return &text, nil
}

// GetChapter returns the chapter with its verses ordered by number, or nil if
// either the text or the chapter does not exist.
func (r *Repository) GetChapter(ctx context.Context, title string, number int) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.chaptersOf(ctx, title).
		Preload("Verses", orderByNumber).
		Where("chapters.number = ?", number).
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.WrapPersistence("get chapter", err)
	}
	return &chapter, nil
}

// ChapterNumbers lists the chapter numbers of a text in ascending order. An
// unknown title yields an empty list.
func (r *Repository) ChapterNumbers(ctx context.Context, title string) ([]int, error) {
	var numbers []int
	err := r.chaptersOf(ctx, title).Order("chapters.number ASC").Pluck("chapters.number", &numbers).Error
	if err != nil {
		return nil, entities.WrapPersistence("list chapter numbers", err)
	}
	return numbers, nil
}

// SiblingChapters returns the chapters numerically before and after number.
// Verses are not loaded. Both are nil when the chapter itself does not exist.
func (r *Repository) SiblingChapters(ctx context.Context, title string, number int) (Siblings, error) {
	var chapters []entities.Chapter
	err := r.chaptersOf(ctx, title).Order("chapters.number ASC").Find(&chapters).Error
	if err != nil {
		return Siblings{}, entities.WrapPersistence("list chapters", err)
	}

	for i, ch := range chapters {
		if ch.Number != number {
			continue
		}
		var s Siblings
		if i > 0 {
			prev := chapters[i-1]
			s.Previous = &prev
		}
		if i < len(chapters)-1 {
			next := chapters[i+1]
			s.Next = &next
		}
		return s, nil
	}
	return Siblings{}, nil
}

// AllTexts returns every text in traversal order: texts by title, chapters
// and verses by number.
func (r *Repository) AllTexts(ctx context.Context) ([]entities.Text, error) {
	var texts []entities.Text
	err := r.db.WithContext(ctx).
		Preload("Chapters", orderByNumber).
		Preload("Chapters.Verses", orderByNumber).
		Order("title ASC").
		Find(&texts).Error
	if err != nil {
		return nil, entities.WrapPersistence("load texts", err)
	}
	sort.SliceStable(texts, func(i, j int) bool {
		return texts[i].Title < texts[j].Title
	})
	return texts, nil
}

// DeleteText removes a text with its chapters and verses. Annotations that
// reference the title are left untouched.
func (r *Repository) DeleteText(ctx context.Context, title string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var text entities.Text
		err := tx.Where("title = ?", title).First(&text).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.NotFoundError{Resource: "text", ID: title}
		}
		if err != nil {
			return entities.WrapPersistence("find text", err)
		}

		chapterIDs := tx.Model(&entities.Chapter{}).Select("id").Where("text_id = ?", text.ID)
		if err := tx.Where("chapter_id IN (?)", chapterIDs).Delete(&entities.Verse{}).Error; err != nil {
			return entities.WrapPersistence("delete verses", err)
		}
		if err := tx.Where("text_id = ?", text.ID).Delete(&entities.Chapter{}).Error; err != nil {
			return entities.WrapPersistence("delete chapters", err)
		}
		if err := tx.Delete(&text).Error; err != nil {
			return entities.WrapPersistence("delete text", err)
		}

		log.Printf("Deleted text %q", title)
		return nil
	})
}

// CountVerses returns the total number of verses across all texts.
func (r *Repository) CountVerses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Verse{}).Count(&count).Error; err != nil {
		return 0, entities.WrapPersistence("count verses", err)
	}
	return count, nil
}

func (r *Repository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	db := r.db.WithContext(ctx)
	if err := db.Model(&entities.Text{}).Count(&s.Texts).Error; err != nil {
		return Stats{}, entities.WrapPersistence("count texts", err)
	}
	if err := db.Model(&entities.Chapter{}).Count(&s.Chapters).Error; err != nil {
		return Stats{}, entities.WrapPersistence("count chapters", err)
	}
	if err := db.Model(&entities.Verse{}).Count(&s.Verses).Error; err != nil {
		return Stats{}, entities.WrapPersistence("count verses", err)
	}
	return s, nil
}

func (r *Repository) chaptersOf(ctx context.Context, title string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&entities.Chapter{}).
		Joins("JOIN texts ON texts.id = chapters.text_id").
		Where("texts.title = ?", title)
}

func orderByNumber(db *gorm.DB) *gorm.DB {
	return db.Order("number ASC")
}
