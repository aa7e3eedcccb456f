package http

import (
	"context"

	"github.com/mrlokans/sutra/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. Nil optional dependencies disable their routes.
type RouterConfig struct {
	// Core dependencies
	Database Pinger
	Texts    TextStore
	Query    QueryService

	// Annotation stores
	Bookmarks  BookmarkStore
	Notes      NoteStore
	Highlights HighlightStore
	History    HistoryStore

	// Maintenance (optional)
	Auditor             AnnotationAuditor
	MaintenanceSettings MaintenanceSettings
	MaintenanceRunner   MaintenanceRunner

	// BaseContext outlives requests. Rescheduling the audit binds the cron
	// loop to it rather than to the request that changed the settings.
	BaseContext context.Context

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
