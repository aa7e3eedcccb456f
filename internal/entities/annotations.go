package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Annotations reference document positions by natural key only. There are no
// foreign keys to texts, chapters or verses, so annotations survive a reseed
// as long as titles and numbers stay stable, and silently dangle otherwise.

type Bookmark struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Text          string    `gorm:"type:text" json:"text"` // snapshot of chapter title or verse
	TextTitle     string    `gorm:"index:idx_bookmark_position;size:512" json:"text_title"`
	ChapterNumber int       `gorm:"index:idx_bookmark_position" json:"chapter_number"`
	VerseNumber   *int      `json:"verse_number,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

type Note struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Text          string    `gorm:"type:text" json:"text"` // verbatim verse at creation time
	Content       string    `gorm:"type:text" json:"content"`
	TextTitle     string    `gorm:"index:idx_note_position;size:512" json:"text_title"`
	ChapterNumber int       `gorm:"index:idx_note_position" json:"chapter_number"`
	VerseNumber   *int      `json:"verse_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`
}

type Highlight struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Text          string         `gorm:"type:text" json:"text"`
	TextTitle     string         `gorm:"index:idx_highlight_position;size:512" json:"text_title"`
	ChapterNumber int            `gorm:"index:idx_highlight_position" json:"chapter_number"`
	VerseNumber   *int           `json:"verse_number,omitempty"`
	Color         HighlightColor `gorm:"size:10;default:'yellow'" json:"color"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ReadingHistory holds at most one row per (TextTitle, ChapterNumber).
type ReadingHistory struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	TextTitle     string    `gorm:"uniqueIndex:idx_history_position;size:512" json:"text_title"`
	ChapterNumber int       `gorm:"uniqueIndex:idx_history_position" json:"chapter_number"`
	VerseNumber   *int      `json:"verse_number,omitempty"`
	LastReadAt    time.Time `gorm:"index" json:"last_read_at"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

func (Note) TableName() string {
	return "notes"
}

func (Highlight) TableName() string {
	return "highlights"
}

func (ReadingHistory) TableName() string {
	return "reading_history"
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (h *Highlight) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

func (r *ReadingHistory) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (b Bookmark) Position() Position {
	return Position{TextTitle: b.TextTitle, ChapterNumber: b.ChapterNumber, VerseNumber: b.VerseNumber}
}

func (n Note) Position() Position {
	return Position{TextTitle: n.TextTitle, ChapterNumber: n.ChapterNumber, VerseNumber: n.VerseNumber}
}

func (h Highlight) Position() Position {
	return Position{TextTitle: h.TextTitle, ChapterNumber: h.ChapterNumber, VerseNumber: h.VerseNumber}
}

func (r ReadingHistory) Position() Position {
	return Position{TextTitle: r.TextTitle, ChapterNumber: r.ChapterNumber, VerseNumber: r.VerseNumber}
}
