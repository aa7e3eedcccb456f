package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/sutra/internal/database"
	"github.com/mrlokans/sutra/internal/database/bookmarks"
	"github.com/mrlokans/sutra/internal/database/highlights"
	"github.com/mrlokans/sutra/internal/database/history"
	"github.com/mrlokans/sutra/internal/database/notes"
	"github.com/mrlokans/sutra/internal/database/settings"
	"github.com/mrlokans/sutra/internal/database/texts"
	"github.com/mrlokans/sutra/internal/http"
	"github.com/mrlokans/sutra/internal/library"
	"github.com/mrlokans/sutra/internal/query"
	"github.com/mrlokans/sutra/internal/scheduler"
	"github.com/mrlokans/sutra/internal/settingsstore"
	"github.com/mrlokans/sutra/internal/tasks"
)

// =============================================================================
// Document Store
// =============================================================================

var _ library.SeedStore = (*texts.Repository)(nil)
var _ query.TextSource = (*texts.Repository)(nil)
var _ http.TextStore = (*texts.Repository)(nil)

// =============================================================================
// Annotation Store
// =============================================================================

var _ http.BookmarkStore = (*bookmarks.Repository)(nil)
var _ http.NoteStore = (*notes.Repository)(nil)
var _ http.HighlightStore = (*highlights.Repository)(nil)
var _ http.HistoryStore = (*history.Repository)(nil)

var _ query.HighlightReader = (*highlights.Repository)(nil)
var _ query.NoteReader = (*notes.Repository)(nil)

// Every annotation collection takes part in the dangling audit.
var _ query.PositionLister = (*bookmarks.Repository)(nil)
var _ query.PositionLister = (*notes.Repository)(nil)
var _ query.PositionLister = (*highlights.Repository)(nil)
var _ query.PositionLister = (*history.Repository)(nil)

// =============================================================================
// Query Layer
// =============================================================================

var _ http.QueryService = (*query.Service)(nil)
var _ library.DanglingFinder = (*query.Service)(nil)

// =============================================================================
// Settings and Background Work
// =============================================================================

var _ library.SettingsStore = (*settings.Repository)(nil)
var _ settingsstore.SettingsRepository = (*settings.Repository)(nil)
var _ http.MaintenanceSettings = (*settingsstore.SettingsStore)(nil)
var _ scheduler.MaintenanceSettings = (*settingsstore.SettingsStore)(nil)
var _ http.MaintenanceRunner = (*scheduler.MaintenanceScheduler)(nil)

var _ tasks.LibrarySeeder = (*library.Seeder)(nil)
var _ tasks.AnnotationAuditor = (*library.Auditor)(nil)
var _ http.AnnotationAuditor = (*library.Auditor)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

var _ http.Pinger = (*database.Database)(nil)
