package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	store HistoryStore
}

func NewHistoryController(store HistoryStore) *HistoryController {
	return &HistoryController{store: store}
}

type RecordReadingRequest struct {
	TextTitle     string `json:"text_title"`
	ChapterNumber int    `json:"chapter_number"`
}

// List handles GET /api/history
func (hc *HistoryController) List(c *gin.Context) {
	list, err := hc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list history")
		return
	}
	respondList(c, list)
}

// Record handles POST /api/history
// A chapter read again moves to the top instead of adding a row.
func (hc *HistoryController) Record(c *gin.Context) {
	var req RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	entry, err := hc.store.Record(c.Request.Context(), strings.TrimSpace(req.TextTitle), req.ChapterNumber)
	if err != nil {
		respondStoreError(c, err, "record reading")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/history/:id
func (hc *HistoryController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := hc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete history entry")
		return
	}
	respondSuccess(c, "history entry deleted")
}
