// Package query holds the read-side logic over the document and annotation
// stores: full-text search, the verse of the day, per-position annotation
// lookup and the dangling annotation report.
//
// The functions in this package are pure over their inputs. Service wires
// them to the stores and the clock.
package query

import (
	"context"
	"time"

	"github.com/mrlokans/sutra/internal/clock"
	"github.com/mrlokans/sutra/internal/entities"
)

// TextSource supplies the whole library in traversal order, and single
// chapters for snapshots.
type TextSource interface {
	AllTexts(ctx context.Context) ([]entities.Text, error)
	GetChapter(ctx context.Context, title string, number int) (*entities.Chapter, error)
}

// PositionLister is implemented by every annotation repository.
type PositionLister interface {
	AllPositions(ctx context.Context) ([]entities.AnnotationRef, error)
}

type Service struct {
	*Resolver
	texts   TextSource
	clock   clock.Clock
	workers int
}

func NewService(texts TextSource, resolver *Resolver, c clock.Clock, searchWorkers int) *Service {
	if searchWorkers < 1 {
		searchWorkers = DefaultSearchWorkers
	}
	return &Service{
		Resolver: resolver,
		texts:    texts,
		clock:    c,
		workers:  searchWorkers,
	}
}

func (s *Service) Search(ctx context.Context, q string) ([]SearchResult, error) {
	if fold(q) == "" {
		return []SearchResult{}, nil
	}
	texts, err := s.texts.AllTexts(ctx)
	if err != nil {
		return nil, err
	}
	return Search(ctx, texts, q, s.workers)
}

// DailyVerse returns the verse for date's calendar day, or nil for an empty
// library.
func (s *Service) DailyVerse(ctx context.Context, date time.Time) (*DailyVerse, error) {
	texts, err := s.texts.AllTexts(ctx)
	if err != nil {
		return nil, err
	}
	return SelectDailyVerse(texts, date), nil
}

func (s *Service) Today(ctx context.Context) (*DailyVerse, error) {
	return s.DailyVerse(ctx, s.clock.Now())
}

// Snapshot returns the text an annotation at pos should carry: the verse
// translation for a verse-level position, the chapter title otherwise. A
// position the library cannot resolve yields an empty snapshot.
func (s *Service) Snapshot(ctx context.Context, pos entities.Position) (string, error) {
	ch, err := s.texts.GetChapter(ctx, pos.TextTitle, pos.ChapterNumber)
	if err != nil || ch == nil {
		return "", err
	}
	if !pos.IsVerseLevel() {
		return ch.Title, nil
	}
	for _, v := range ch.Verses {
		if v.Number == *pos.VerseNumber {
			return v.Text, nil
		}
	}
	return "", nil
}

// FindDangling collects positions from every lister and reports those that
// no longer resolve.
func (s *Service) FindDangling(ctx context.Context, listers ...PositionLister) ([]DanglingAnnotation, error) {
	texts, err := s.texts.AllTexts(ctx)
	if err != nil {
		return nil, err
	}

	var refs []entities.AnnotationRef
	for _, l := range listers {
		r, err := l.AllPositions(ctx)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r...)
	}
	return FindDangling(texts, refs), nil
}
