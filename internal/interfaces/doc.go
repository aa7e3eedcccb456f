// Package interfaces documents the core abstractions used throughout the
// reader and holds compile-time checks that the concrete types satisfy them.
//
// # Interface Categories
//
// ## Document Store
//
//   - library.SeedStore: idempotent catalog seeding (internal/library/seeder.go)
//   - query.TextSource: the whole library in traversal order (internal/query/service.go)
//   - http.TextStore: listing and chapter lookup (internal/http/stores.go)
//
// ## Annotation Store
//
//   - query.HighlightReader, query.NoteReader: position-scoped reads used by
//     the resolver (internal/query/resolver.go)
//   - query.PositionLister: every annotation row with its position, used by
//     the dangling audit (internal/query/service.go)
//   - http.BookmarkStore, http.NoteStore, http.HighlightStore,
//     http.HistoryStore: the write side (internal/http/stores.go)
//
// ## Background Work
//
//   - tasks.LibrarySeeder, tasks.AnnotationAuditor: what the backlite queues
//     run (internal/tasks/)
//   - scheduler.MaintenanceSettings: the effective audit schedule
//     (internal/scheduler/maintenance.go)
//
// # Adding a New Annotation Kind
//
//  1. Add the entity in internal/entities/annotations.go with TextTitle,
//     ChapterNumber and a nullable VerseNumber, and register it in
//     database.NewDatabase's AutoMigrate call.
//
//  2. Create sub-package internal/database/<kind>/:
//
//     type Repository struct { db *gorm.DB; clock clock.Clock }
//
//     func NewRepository(db *gorm.DB, c clock.Clock) *Repository
//
//     Scope position lookups with database.WherePosition so a chapter-level
//     position never matches verse rows.
//
//  3. Implement AllPositions and pass the repository to library.NewAuditor.
//
//  4. Add compile-time checks:
//
//     var _ query.PositionLister = (*<kind>.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
