package http

import (
	"context"
	"time"

	"github.com/mrlokans/sutra/internal/database/bookmarks"
	"github.com/mrlokans/sutra/internal/database/highlights"
	"github.com/mrlokans/sutra/internal/database/notes"
	"github.com/mrlokans/sutra/internal/database/texts"
	"github.com/mrlokans/sutra/internal/entities"
	"github.com/mrlokans/sutra/internal/library"
	"github.com/mrlokans/sutra/internal/query"
	"github.com/mrlokans/sutra/internal/settingsstore"
)

// This file consolidates the store interfaces used by the HTTP controllers.
// Each controller depends only on the methods it calls; the concrete
// repositories in internal/database satisfy them.

// --- Document store ---

// TextStore provides read access to the library.
type TextStore interface {
	ListTexts(ctx context.Context, filter texts.TextFilter) ([]entities.Text, error)
	Categories(ctx context.Context) ([]string, error)
	GetChapter(ctx context.Context, title string, number int) (*entities.Chapter, error)
	ChapterNumbers(ctx context.Context, title string) ([]int, error)
	SiblingChapters(ctx context.Context, title string, number int) (texts.Siblings, error)
	Stats(ctx context.Context) (texts.Stats, error)
}

// --- Query layer ---

// QueryService exposes search, the verse of the day and annotation lookup.
type QueryService interface {
	Search(ctx context.Context, q string) ([]query.SearchResult, error)
	DailyVerse(ctx context.Context, date time.Time) (*query.DailyVerse, error)
	Today(ctx context.Context) (*query.DailyVerse, error)
	IsHighlighted(ctx context.Context, pos entities.Position) (*entities.HighlightColor, error)
	NotesAt(ctx context.Context, pos entities.Position) ([]entities.Note, error)
	ChapterAnnotations(ctx context.Context, title string, chapter int) (*query.ChapterAnnotations, error)
	Snapshot(ctx context.Context, pos entities.Position) (string, error)
}

// --- Annotation stores ---

type BookmarkStore interface {
	Add(ctx context.Context, in bookmarks.BookmarkInput) (*entities.Bookmark, error)
	List(ctx context.Context, query string) ([]entities.Bookmark, error)
	At(ctx context.Context, pos entities.Position) ([]entities.Bookmark, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type NoteStore interface {
	Add(ctx context.Context, in notes.NoteInput) (*entities.Note, error)
	Update(ctx context.Context, id, content string) (*entities.Note, error)
	Get(ctx context.Context, id string) (*entities.Note, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query string) ([]entities.Note, error)
	Count(ctx context.Context) (int64, error)
}

type HighlightStore interface {
	Set(ctx context.Context, in highlights.HighlightInput) (*entities.Highlight, error)
	Remove(ctx context.Context, pos entities.Position) error
	At(ctx context.Context, pos entities.Position) (*entities.Highlight, error)
	List(ctx context.Context) ([]entities.Highlight, error)
	Count(ctx context.Context) (int64, error)
}

type HistoryStore interface {
	Record(ctx context.Context, title string, chapter int) (*entities.ReadingHistory, error)
	List(ctx context.Context) ([]entities.ReadingHistory, error)
	Latest(ctx context.Context) (*entities.ReadingHistory, error)
	Delete(ctx context.Context, id string) error
}

// --- Maintenance ---

// AnnotationAuditor runs the dangling annotation report.
type AnnotationAuditor interface {
	Check(ctx context.Context) (*library.AuditReport, error)
}

// MaintenanceSettings reads and overrides the audit schedule.
type MaintenanceSettings interface {
	GetMaintenanceConfigInfo(ctx context.Context) settingsstore.MaintenanceConfigInfo
	GetMaintenanceStatus(ctx context.Context) settingsstore.MaintenanceStatus
	SetMaintenanceEnabled(ctx context.Context, enabled bool) error
	SetMaintenanceSchedule(ctx context.Context, schedule string) error
	ClearMaintenanceOverrides(ctx context.Context) error
}

// MaintenanceRunner is satisfied by *scheduler.MaintenanceScheduler.
type MaintenanceRunner interface {
	Reschedule(ctx context.Context) error
	RunNow(ctx context.Context) error
	IsRunning() bool
	GetNextRunTime() *time.Time
}
