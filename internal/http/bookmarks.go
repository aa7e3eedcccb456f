package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/database/bookmarks"
)

type BookmarksController struct {
	store BookmarkStore
	query QueryService
}

func NewBookmarksController(store BookmarkStore, query QueryService) *BookmarksController {
	return &BookmarksController{store: store, query: query}
}

type CreateBookmarkRequest struct {
	PositionRequest
	Text string `json:"text"`
}

// List handles GET /api/bookmarks?q=
func (bc *BookmarksController) List(c *gin.Context) {
	list, err := bc.store.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, err, "list bookmarks")
		return
	}
	respondList(c, list)
}

// At handles GET /api/bookmarks/at?title=&chapter=&verse=
func (bc *BookmarksController) At(c *gin.Context) {
	pos, ok := parsePositionQuery(c)
	if !ok {
		return
	}
	list, err := bc.store.At(c.Request.Context(), pos)
	if err != nil {
		respondStoreError(c, err, "bookmarks at position")
		return
	}
	respondList(c, list)
}

// Create handles POST /api/bookmarks
func (bc *BookmarksController) Create(c *gin.Context) {
	var req CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	pos := req.Position()
	text, err := snapshotFor(ctx, bc.query, pos, req.Text)
	if err != nil {
		respondStoreError(c, err, "bookmark snapshot")
		return
	}

	bookmark, err := bc.store.Add(ctx, bookmarks.BookmarkInput{
		Position: pos,
		Text:     text,
	})
	if err != nil {
		respondStoreError(c, err, "add bookmark")
		return
	}
	respondCreated(c, bookmark)
}

// Delete handles DELETE /api/bookmarks/:id
func (bc *BookmarksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := bc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete bookmark")
		return
	}
	respondSuccess(c, "bookmark deleted")
}
