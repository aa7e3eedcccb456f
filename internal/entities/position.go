package entities

import (
	"fmt"
	"strings"
)

// Position addresses a chapter (VerseNumber nil) or a single verse inside a
// text by natural key.
type Position struct {
	TextTitle     string `json:"text_title"`
	ChapterNumber int    `json:"chapter_number"`
	VerseNumber   *int   `json:"verse_number,omitempty"`
}

// ChapterPosition returns a chapter-level position.
func ChapterPosition(title string, chapter int) Position {
	return Position{TextTitle: title, ChapterNumber: chapter}
}

// VersePosition returns a verse-level position.
func VersePosition(title string, chapter, verse int) Position {
	v := verse
	return Position{TextTitle: title, ChapterNumber: chapter, VerseNumber: &v}
}

// IsVerseLevel reports whether the position names a single verse.
func (p Position) IsVerseLevel() bool {
	return p.VerseNumber != nil
}

// Matches compares two positions by tuple. A chapter-level position never
// matches a verse-level one.
func (p Position) Matches(other Position) bool {
	if p.TextTitle != other.TextTitle || p.ChapterNumber != other.ChapterNumber {
		return false
	}
	if p.VerseNumber == nil || other.VerseNumber == nil {
		return p.VerseNumber == nil && other.VerseNumber == nil
	}
	return *p.VerseNumber == *other.VerseNumber
}

// Validate checks the fields a caller must always supply.
func (p Position) Validate() error {
	if strings.TrimSpace(p.TextTitle) == "" {
		return &ValidationError{Field: "text_title", Message: "must be provided"}
	}
	if p.ChapterNumber < 0 {
		return &ValidationError{Field: "chapter_number", Value: fmt.Sprint(p.ChapterNumber), Message: "must not be negative"}
	}
	if p.VerseNumber != nil && *p.VerseNumber < 0 {
		return &ValidationError{Field: "verse_number", Value: fmt.Sprint(*p.VerseNumber), Message: "must not be negative"}
	}
	return nil
}

func (p Position) String() string {
	if p.VerseNumber == nil {
		return fmt.Sprintf("%s %d", p.TextTitle, p.ChapterNumber)
	}
	return fmt.Sprintf("%s %d:%d", p.TextTitle, p.ChapterNumber, *p.VerseNumber)
}
