package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/config"
	"github.com/mrlokans/sutra/internal/database"
	"github.com/mrlokans/sutra/internal/database/bookmarks"
	"github.com/mrlokans/sutra/internal/database/highlights"
	"github.com/mrlokans/sutra/internal/database/history"
	"github.com/mrlokans/sutra/internal/database/notes"
	"github.com/mrlokans/sutra/internal/database/settings"
	"github.com/mrlokans/sutra/internal/database/texts"
	http_controllers "github.com/mrlokans/sutra/internal/http"
	"github.com/mrlokans/sutra/internal/library"
	"github.com/mrlokans/sutra/internal/query"
	"github.com/mrlokans/sutra/internal/scheduler"
	"github.com/mrlokans/sutra/internal/settingsstore"
	"github.com/mrlokans/sutra/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// App holds the stores and services every entry point needs.
type App struct {
	DB         *database.Database
	Clock      clock.Clock
	Texts      *texts.Repository
	Settings   *settings.Repository
	Bookmarks  *bookmarks.Repository
	Notes      *notes.Repository
	Highlights *highlights.Repository
	History    *history.Repository
	Query      *query.Service
	Seeder     *library.Seeder
	Auditor    *library.Auditor
}

// NewApp opens the library database and wires the repositories and services
// over it. The caller closes App.DB.
func NewApp(cfg *config.Config, c clock.Clock) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, database.WithLogLevel(cfg.Database.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app := &App{
		DB:         db,
		Clock:      c,
		Texts:      texts.NewRepository(db.DB),
		Settings:   settings.NewRepository(db.DB),
		Bookmarks:  bookmarks.NewRepository(db.DB, c),
		Notes:      notes.NewRepository(db.DB, c),
		Highlights: highlights.NewRepository(db.DB, c),
		History:    history.NewRepository(db.DB, c),
	}
	app.Query = query.NewService(app.Texts, query.NewResolver(app.Highlights, app.Notes), c, cfg.Search.Workers)
	app.Seeder = library.NewSeeder(app.Texts, app.Settings, c)
	app.Auditor = library.NewAuditor(app.Query, app.Settings, c,
		app.Bookmarks, app.Notes, app.Highlights, app.History)
	return app, nil
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Sutra v%s", version)

	app, err := NewApp(cfg, clock.System{})
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := app.DB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Seeding failures are logged and recorded; the reader starts regardless.
	if cfg.Library.SeedOnStart {
		app.Seeder.Run(context.Background())
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewSeedLibraryQueue(app.Seeder),
			tasks.NewAuditAnnotationsQueue(app.Auditor),
		)
		go taskClient.Start(appCtx)
	}

	// The audit goes through the queue when there is one, so a failed run
	// is retried.
	auditJob := func(ctx context.Context) error {
		if taskClient != nil {
			_, err := taskClient.Add(tasks.AuditAnnotationsTask{Trigger: "schedule"}).Save()
			return err
		}
		_, err := app.Auditor.Run(ctx)
		return err
	}

	settingsStore := settingsstore.New(app.Settings, cfg.Maintenance)
	maintenance := scheduler.NewMaintenanceScheduler(settingsStore, auditJob)
	if err := maintenance.Start(appCtx); err != nil {
		log.Printf("WARNING: Maintenance scheduler not started: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Database:            app.DB,
		Texts:               app.Texts,
		Query:               app.Query,
		Bookmarks:           app.Bookmarks,
		Notes:               app.Notes,
		Highlights:          app.Highlights,
		History:             app.History,
		Auditor:             app.Auditor,
		MaintenanceSettings: settingsStore,
		MaintenanceRunner:   maintenance,
		BaseContext:         appCtx,
		TaskClient:          taskClient,
		Version:             version,
	}

	router := http_controllers.NewRouter(routerCfg)

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		maintenance.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		appCancel()
	}

	Serve(router, cfg, onShutdown)
}
