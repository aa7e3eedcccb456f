package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/database/notes"
)

type NotesController struct {
	store NoteStore
	query QueryService
}

func NewNotesController(store NoteStore, query QueryService) *NotesController {
	return &NotesController{store: store, query: query}
}

type CreateNoteRequest struct {
	PositionRequest
	Text    string `json:"text"`
	Content string `json:"content"`
}

type UpdateNoteRequest struct {
	Content string `json:"content"`
}

// List handles GET /api/notes?q=
func (nc *NotesController) List(c *gin.Context) {
	list, err := nc.store.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, err, "list notes")
		return
	}
	respondList(c, list)
}

// At handles GET /api/notes/at?title=&chapter=&verse=
// Without verse only chapter-level notes are returned.
func (nc *NotesController) At(c *gin.Context) {
	pos, ok := parsePositionQuery(c)
	if !ok {
		return
	}
	list, err := nc.query.NotesAt(c.Request.Context(), pos)
	if err != nil {
		respondStoreError(c, err, "notes at position")
		return
	}
	respondList(c, list)
}

// Get handles GET /api/notes/:id
func (nc *NotesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	note, err := nc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "get note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// Create handles POST /api/notes
func (nc *NotesController) Create(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ctx := c.Request.Context()
	pos := req.Position()
	text, err := snapshotFor(ctx, nc.query, pos, req.Text)
	if err != nil {
		respondStoreError(c, err, "note snapshot")
		return
	}

	note, err := nc.store.Add(ctx, notes.NoteInput{
		Position: pos,
		Text:     text,
		Content:  req.Content,
	})
	if err != nil {
		respondStoreError(c, err, "add note")
		return
	}
	respondCreated(c, note)
}

// Update handles PATCH /api/notes/:id
func (nc *NotesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	note, err := nc.store.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		respondStoreError(c, err, "update note")
		return
	}
	c.JSON(http.StatusOK, note)
}

// Delete handles DELETE /api/notes/:id
func (nc *NotesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := nc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "delete note")
		return
	}
	respondSuccess(c, "note deleted")
}
