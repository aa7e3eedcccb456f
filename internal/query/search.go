package query

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/mrlokans/sutra/internal/entities"
)

// DefaultSearchWorkers bounds how many texts are scanned at once.
const DefaultSearchWorkers = 4

type SearchResult struct {
	TextTitle     string `json:"text_title"`
	ChapterNumber int    `json:"chapter_number"`
	VerseNumber   int    `json:"verse_number"`
	VerseText     string `json:"verse_text"`
}

func (r SearchResult) Position() entities.Position {
	return entities.VersePosition(r.TextTitle, r.ChapterNumber, r.VerseNumber)
}

// Search returns every verse whose searchable text contains query, ignoring
// case. Results follow traversal order. An empty query matches nothing.
//
// Texts are scanned concurrently, each into its own slot, and the slots are
// concatenated in text order afterwards.
func Search(ctx context.Context, texts []entities.Text, query string, workers int) ([]SearchResult, error) {
	needle := fold(query)
	if needle == "" {
		return []SearchResult{}, nil
	}
	if workers < 1 {
		workers = DefaultSearchWorkers
	}

	ordered := inTraversalOrder(texts)
	slots := make([][]SearchResult, len(ordered))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range ordered {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = searchText(&ordered[i], needle)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for _, slot := range slots {
		results = append(results, slot...)
	}
	return results, nil
}

func searchText(text *entities.Text, needle string) []SearchResult {
	var results []SearchResult
	for _, ch := range text.Chapters {
		for _, v := range ch.Verses {
			if strings.Contains(fold(Searchable(v)), needle) {
				results = append(results, SearchResult{
					TextTitle:     text.Title,
					ChapterNumber: ch.Number,
					VerseNumber:   v.Number,
					VerseText:     v.Text,
				})
			}
		}
	}
	return results
}

// Searchable joins the translation, transliteration, original script and
// notation of a verse with single spaces. Missing fields are skipped.
func Searchable(v entities.Verse) string {
	parts := []string{v.Text}
	for _, f := range []*string{v.Transliteration, v.OriginalScript, v.Notation} {
		if f != nil {
			parts = append(parts, *f)
		}
	}
	return strings.Join(parts, " ")
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
