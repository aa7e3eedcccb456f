package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/database/highlights"
	"github.com/mrlokans/sutra/internal/entities"
)

type HighlightsController struct {
	store HighlightStore
	query QueryService
}

func NewHighlightsController(store HighlightStore, query QueryService) *HighlightsController {
	return &HighlightsController{store: store, query: query}
}

type SetHighlightRequest struct {
	PositionRequest
	Text  string `json:"text"`
	Color string `json:"color"`
}

// HighlightStateResponse answers "is this position highlighted".
type HighlightStateResponse struct {
	Highlighted bool                     `json:"highlighted"`
	Color       *entities.HighlightColor `json:"color,omitempty"`
	Highlight   *entities.Highlight      `json:"highlight,omitempty"`
}

// List handles GET /api/highlights
func (hc *HighlightsController) List(c *gin.Context) {
	list, err := hc.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list highlights")
		return
	}
	respondList(c, list)
}

// At handles GET /api/highlights/at?title=&chapter=&verse=
func (hc *HighlightsController) At(c *gin.Context) {
	pos, ok := parsePositionQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	color, err := hc.query.IsHighlighted(ctx, pos)
	if err != nil {
		respondStoreError(c, err, "highlight state")
		return
	}
	resp := HighlightStateResponse{Highlighted: color != nil, Color: color}
	if color != nil {
		if resp.Highlight, err = hc.store.At(ctx, pos); err != nil {
			respondStoreError(c, err, "highlight at position")
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Set handles PUT /api/highlights
// Replaces whatever highlight the position had.
func (hc *HighlightsController) Set(c *gin.Context) {
	var req SetHighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	pos := req.Position()
	text, err := snapshotFor(ctx, hc.query, pos, req.Text)
	if err != nil {
		respondStoreError(c, err, "highlight snapshot")
		return
	}

	highlight, err := hc.store.Set(ctx, highlights.HighlightInput{
		Position: pos,
		Text:     text,
		Color:    req.Color,
	})
	if err != nil {
		respondStoreError(c, err, "set highlight")
		return
	}
	c.JSON(http.StatusOK, highlight)
}

// Remove handles DELETE /api/highlights?title=&chapter=&verse=
// Removing a position without a highlight succeeds.
func (hc *HighlightsController) Remove(c *gin.Context) {
	pos, ok := parsePositionQuery(c)
	if !ok {
		return
	}
	if err := hc.store.Remove(c.Request.Context(), pos); err != nil {
		respondStoreError(c, err, "remove highlight")
		return
	}
	respondSuccess(c, "highlight removed")
}
