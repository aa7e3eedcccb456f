package database

import (
	"gorm.io/gorm"

	"github.com/mrlokans/sutra/internal/entities"
)

// WherePosition scopes a query on an annotation table to the exact position
// tuple. A chapter-level position matches only rows with a NULL verse number.
func WherePosition(db *gorm.DB, pos entities.Position) *gorm.DB {
	db = db.Where("text_title = ? AND chapter_number = ?", pos.TextTitle, pos.ChapterNumber)
	if !pos.IsVerseLevel() {
		return db.Where("verse_number IS NULL")
	}
	return db.Where("verse_number = ?", *pos.VerseNumber)
}

// WhereChapter scopes a query to every annotation inside a chapter, both
// chapter-level and verse-level.
func WhereChapter(db *gorm.DB, title string, chapter int) *gorm.DB {
	return db.Where("text_title = ? AND chapter_number = ?", title, chapter)
}
