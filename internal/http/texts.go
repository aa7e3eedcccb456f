package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/sutra/internal/database/texts"
	"github.com/mrlokans/sutra/internal/entities"
	"github.com/mrlokans/sutra/internal/query"
)

type TextsController struct {
	texts TextStore
	query QueryService
}

func NewTextsController(texts TextStore, query QueryService) *TextsController {
	return &TextsController{texts: texts, query: query}
}

// TextSummary is a text without its verses.
type TextSummary struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Author         *string  `json:"author,omitempty"`
	Description    *string  `json:"description,omitempty"`
	Category       string   `json:"category"`
	ChapterNumbers []int    `json:"chapter_numbers"`
	ChapterTitles  []string `json:"chapter_titles"`
}

func summarize(t entities.Text) TextSummary {
	s := TextSummary{
		ID:             t.ID,
		Title:          t.Title,
		Author:         t.Author,
		Description:    t.Description,
		Category:       t.Category,
		ChapterNumbers: []int{},
		ChapterTitles:  []string{},
	}
	for _, ch := range t.SortedChapters() {
		s.ChapterNumbers = append(s.ChapterNumbers, ch.Number)
		s.ChapterTitles = append(s.ChapterTitles, ch.Title)
	}
	return s
}

// ListTexts handles GET /api/texts?title=&author=&category=
func (tc *TextsController) ListTexts(c *gin.Context) {
	filter := texts.TextFilter{
		TitleContains:  c.Query("title"),
		AuthorContains: c.Query("author"),
		Category:       c.Query("category"),
	}

	list, err := tc.texts.ListTexts(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err, "list texts")
		return
	}

	out := make([]TextSummary, 0, len(list))
	for _, t := range list {
		out = append(out, summarize(t))
	}
	respondList(c, out)
}

// Categories handles GET /api/texts/categories
func (tc *TextsController) Categories(c *gin.Context) {
	categories, err := tc.texts.Categories(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "list categories")
		return
	}
	respondList(c, categories)
}

// ChapterResponse is everything needed to draw one chapter.
type ChapterResponse struct {
	TextTitle   string                    `json:"text_title"`
	Chapter     *entities.Chapter         `json:"chapter"`
	Previous    *int                      `json:"previous_chapter,omitempty"`
	Next        *int                      `json:"next_chapter,omitempty"`
	Annotations *query.ChapterAnnotations `json:"annotations"`
}

// ChapterNotFoundResponse lets the reader show the chapters that do exist.
type ChapterNotFoundResponse struct {
	Error             string `json:"error"`
	AvailableChapters []int  `json:"available_chapters"`
}

// GetChapter handles GET /api/texts/:title/chapters/:number
func (tc *TextsController) GetChapter(c *gin.Context) {
	title := c.Param("title")
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	chapter, err := tc.texts.GetChapter(ctx, title, number)
	if err != nil {
		respondStoreError(c, err, "get chapter")
		return
	}
	if chapter == nil {
		available, err := tc.texts.ChapterNumbers(ctx, title)
		if err != nil {
			respondStoreError(c, err, "list chapter numbers")
			return
		}
		if available == nil {
			available = []int{}
		}
		c.JSON(http.StatusNotFound, ChapterNotFoundResponse{
			Error:             "chapter not found",
			AvailableChapters: available,
		})
		return
	}

	siblings, err := tc.texts.SiblingChapters(ctx, title, number)
	if err != nil {
		respondStoreError(c, err, "sibling chapters")
		return
	}
	annotations, err := tc.query.ChapterAnnotations(ctx, title, number)
	if err != nil {
		respondStoreError(c, err, "chapter annotations")
		return
	}

	resp := ChapterResponse{
		TextTitle:   title,
		Chapter:     chapter,
		Annotations: annotations,
	}
	if siblings.Previous != nil {
		resp.Previous = &siblings.Previous.Number
	}
	if siblings.Next != nil {
		resp.Next = &siblings.Next.Number
	}
	c.JSON(http.StatusOK, resp)
}
