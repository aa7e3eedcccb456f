package entities

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Text is a work in the library. It owns its chapters, and deleting a text
// removes its chapters and their verses.
type Text struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"uniqueIndex;size:512" json:"title"`
	Author      *string   `gorm:"size:256" json:"author,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"index;size:64;default:'Sutra'" json:"category"`
	Chapters    []Chapter `gorm:"foreignKey:TextID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Chapter belongs to a Text through TextID. Numbers are unique within a text
// but need not be contiguous.
type Chapter struct {
	ID     string  `gorm:"primaryKey;size:36" json:"id"`
	TextID string  `gorm:"uniqueIndex:idx_chapter_text_number;size:36;not null" json:"text_id"`
	Number int     `gorm:"uniqueIndex:idx_chapter_text_number" json:"number"`
	Title  string  `gorm:"size:512" json:"title"`
	Verses []Verse `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"verses,omitempty"`
}

// Verse is a single line of a chapter. Number 0 is used for preamble lines.
type Verse struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ChapterID string `gorm:"uniqueIndex:idx_verse_chapter_number;size:36;not null" json:"chapter_id"`
	Number    int    `gorm:"uniqueIndex:idx_verse_chapter_number" json:"number"`
	Text      string `gorm:"type:text" json:"text"`

	// Parallel representations
	Notation        *string `gorm:"type:text" json:"notation,omitempty"`         // rhythm notation
	Transliteration *string `gorm:"type:text" json:"transliteration,omitempty"`  // e.g. pinyin
	OriginalScript  *string `gorm:"type:text" json:"original_script,omitempty"` // e.g. Chinese
}

func (Text) TableName() string {
	return "texts"
}

func (Chapter) TableName() string {
	return "chapters"
}

func (Verse) TableName() string {
	return "verses"
}

func (t *Text) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (v *Verse) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// SortedChapters returns the chapters ordered by ascending number.
func (t *Text) SortedChapters() []Chapter {
	chapters := make([]Chapter, len(t.Chapters))
	copy(chapters, t.Chapters)
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})
	return chapters
}

// SortedVerses returns the verses ordered by ascending number.
func (c *Chapter) SortedVerses() []Verse {
	verses := make([]Verse, len(c.Verses))
	copy(verses, c.Verses)
	sort.SliceStable(verses, func(i, j int) bool {
		return verses[i].Number < verses[j].Number
	})
	return verses
}

// VerseCount returns the number of verses across all chapters.
func (t *Text) VerseCount() int {
	total := 0
	for _, ch := range t.Chapters {
		total += len(ch.Verses)
	}
	return total
}

// HasParallelText reports whether the verse carries any representation
// beyond the translation.
func (v *Verse) HasParallelText() bool {
	return v.Notation != nil || v.Transliteration != nil || v.OriginalScript != nil
}
