package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// securityHeaders sets the headers a local JSON API still needs when it is
// reachable from a browser.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Next()
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(securityHeaders())

	health := NewHealthController(cfg.Database, cfg.Version)
	textsController := NewTextsController(cfg.Texts, cfg.Query)
	readingController := NewReadingController(cfg)
	bookmarksController := NewBookmarksController(cfg.Bookmarks, cfg.Query)
	notesController := NewNotesController(cfg.Notes, cfg.Query)
	highlightsController := NewHighlightsController(cfg.Highlights, cfg.Query)
	historyController := NewHistoryController(cfg.History)
	maintenanceController := NewMaintenanceController(cfg)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Library
	api.GET("/texts", textsController.ListTexts)
	api.GET("/texts/categories", textsController.Categories)
	api.GET("/texts/:title/chapters/:number", textsController.GetChapter)
	api.GET("/search", readingController.Search)
	api.GET("/daily-verse", readingController.DailyVerse)
	api.GET("/stats", readingController.Stats)

	// Bookmarks
	api.GET("/bookmarks", bookmarksController.List)
	api.GET("/bookmarks/at", bookmarksController.At)
	api.POST("/bookmarks", bookmarksController.Create)
	api.DELETE("/bookmarks/:id", bookmarksController.Delete)

	// Notes
	api.GET("/notes", notesController.List)
	api.GET("/notes/at", notesController.At)
	api.GET("/notes/:id", notesController.Get)
	api.POST("/notes", notesController.Create)
	api.PATCH("/notes/:id", notesController.Update)
	api.DELETE("/notes/:id", notesController.Delete)

	// Highlights
	api.GET("/highlights", highlightsController.List)
	api.GET("/highlights/at", highlightsController.At)
	api.PUT("/highlights", highlightsController.Set)
	api.DELETE("/highlights", highlightsController.Remove)

	// Reading history
	api.GET("/history", historyController.List)
	api.POST("/history", historyController.Record)
	api.DELETE("/history/:id", historyController.Delete)

	// Maintenance
	api.GET("/maintenance/dangling", maintenanceController.Dangling)
	api.GET("/maintenance/settings", maintenanceController.GetSettings)
	api.PUT("/maintenance/settings", maintenanceController.UpdateSettings)
	api.DELETE("/maintenance/settings", maintenanceController.ResetSettings)
	api.POST("/maintenance/run", maintenanceController.RunNow)

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
