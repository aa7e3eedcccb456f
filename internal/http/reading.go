package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/entities"
	"github.com/mrlokans/sutra/internal/query"
)

// ReadingController serves search, the verse of the day and library stats.
type ReadingController struct {
	texts      TextStore
	query      QueryService
	bookmarks  BookmarkStore
	notes      NoteStore
	highlights HighlightStore
	history    HistoryStore
}

func NewReadingController(cfg RouterConfig) *ReadingController {
	return &ReadingController{
		texts:      cfg.Texts,
		query:      cfg.Query,
		bookmarks:  cfg.Bookmarks,
		notes:      cfg.Notes,
		highlights: cfg.Highlights,
		history:    cfg.History,
	}
}

// Search handles GET /api/search?q=
func (rc *ReadingController) Search(c *gin.Context) {
	results, err := rc.query.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, err, "search")
		return
	}
	respondList(c, results)
}

// DailyVerse handles GET /api/daily-verse?date=YYYY-MM-DD
// Without a date the server clock decides the day.
func (rc *ReadingController) DailyVerse(c *gin.Context) {
	var (
		verse *query.DailyVerse
		err   error
	)
	if dateStr := c.Query("date"); dateStr != "" {
		date, perr := time.ParseInLocation(time.DateOnly, dateStr, time.Local)
		if perr != nil {
			respondBadRequest(c, "invalid date, expected YYYY-MM-DD")
			return
		}
		verse, err = rc.query.DailyVerse(c.Request.Context(), date)
	} else {
		verse, err = rc.query.Today(c.Request.Context())
	}
	if err != nil {
		respondStoreError(c, err, "daily verse")
		return
	}
	if verse == nil {
		respondNotFound(c, "daily verse")
		return
	}
	c.JSON(http.StatusOK, verse)
}

type StatsResponse struct {
	Texts         int64                    `json:"texts"`
	Chapters      int64                    `json:"chapters"`
	Verses        int64                    `json:"verses"`
	Bookmarks     int64                    `json:"bookmarks"`
	Notes         int64                    `json:"notes"`
	Highlights    int64                    `json:"highlights"`
	LatestReading *entities.ReadingHistory `json:"latest_reading,omitempty"`
}

// Stats handles GET /api/stats
func (rc *ReadingController) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	library, err := rc.texts.Stats(ctx)
	if err != nil {
		respondStoreError(c, err, "library stats")
		return
	}
	resp := StatsResponse{
		Texts:    library.Texts,
		Chapters: library.Chapters,
		Verses:   library.Verses,
	}

	if resp.Bookmarks, err = rc.bookmarks.Count(ctx); err != nil {
		respondStoreError(c, err, "count bookmarks")
		return
	}
	if resp.Notes, err = rc.notes.Count(ctx); err != nil {
		respondStoreError(c, err, "count notes")
		return
	}
	if resp.Highlights, err = rc.highlights.Count(ctx); err != nil {
		respondStoreError(c, err, "count highlights")
		return
	}
	if resp.LatestReading, err = rc.history.Latest(ctx); err != nil {
		respondStoreError(c, err, "latest reading")
		return
	}

	c.JSON(http.StatusOK, resp)
}
