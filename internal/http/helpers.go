package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/sutra/internal/entities"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ListResponse wraps a list together with its length.
type ListResponse struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "invalid_argument"})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "persistence"})
}

// respondStoreError maps the store error kinds onto status codes.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, entities.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_argument"})
	default:
		respondInternalError(c, err, context)
	}
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, ListResponse{Data: items, Total: len(items)})
}

// --- Parameter Parsing ---

// parseIDParam extracts an annotation UUID from URL parameters.
// Returns the ID or responds with a 400 error and returns "", false.
func parseIDParam(c *gin.Context, paramName string) (string, bool) {
	id, err := uuid.Parse(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return "", false
	}
	return id.String(), true
}

// parseIntParam extracts a non-negative integer from URL parameters.
func parseIntParam(c *gin.Context, paramName string) (int, bool) {
	n, err := strconv.Atoi(c.Param(paramName))
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return n, true
}

// parsePositionQuery reads title, chapter and an optional verse from the
// query string.
func parsePositionQuery(c *gin.Context) (entities.Position, bool) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		respondBadRequest(c, "title is required")
		return entities.Position{}, false
	}

	chapterStr := c.Query("chapter")
	if chapterStr == "" {
		respondBadRequest(c, "chapter is required")
		return entities.Position{}, false
	}
	chapter, err := strconv.Atoi(chapterStr)
	if err != nil || chapter < 0 {
		respondBadRequest(c, "invalid chapter")
		return entities.Position{}, false
	}

	verseStr := c.Query("verse")
	if verseStr == "" {
		return entities.ChapterPosition(title, chapter), true
	}
	verse, err := strconv.Atoi(verseStr)
	if err != nil || verse < 0 {
		respondBadRequest(c, "invalid verse")
		return entities.Position{}, false
	}
	return entities.VersePosition(title, chapter, verse), true
}

// PositionRequest is the JSON form of a position in request bodies.
type PositionRequest struct {
	TextTitle     string `json:"text_title"`
	ChapterNumber int    `json:"chapter_number"`
	VerseNumber   *int   `json:"verse_number"`
}

func (p PositionRequest) Position() entities.Position {
	return entities.Position{
		TextTitle:     strings.TrimSpace(p.TextTitle),
		ChapterNumber: p.ChapterNumber,
		VerseNumber:   p.VerseNumber,
	}
}

// snapshotFor keeps a client-supplied snapshot and otherwise copies the text
// the library holds at pos.
func snapshotFor(ctx context.Context, q QueryService, pos entities.Position, given string) (string, error) {
	if strings.TrimSpace(given) != "" {
		return given, nil
	}
	return q.Snapshot(ctx, pos)
}
