// Package database provides the data access layer for the reader.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, settings
//	├── texts/           # Document store: seeding and hierarchical lookup
//	├── bookmarks/       # Bookmarks (insert-only)
//	├── notes/           # Notes (insert, edit, delete)
//	├── highlights/      # Highlights (one per position, upsert)
//	├── history/         # Reading history (one per chapter, upsert)
//	└── settings/        # Key/value bookkeeping
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type over the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./sutra.db")
//
//	textsRepo := texts.NewRepository(db.DB)
//	notesRepo := notes.NewRepository(db.DB, clock.System{})
//
//	chapter, err := textsRepo.GetChapter(ctx, "Heart Sutra", 1)
//	notes, err := notesRepo.AtPosition(ctx, entities.VersePosition("Heart Sutra", 1, 3))
//
// # Position Keys
//
// Annotation tables carry (text_title, chapter_number, verse_number) and no
// foreign keys into the document tables. Deleting or reseeding a text never
// touches annotations; renaming a text orphans them.
//
// # Errors
//
// Repositories return *entities.NotFoundError, *entities.ValidationError or
// *entities.PersistenceError. Lookups of chapters and texts that do not exist
// return nil without an error.
package database
