package query

import (
	"github.com/mrlokans/sutra/internal/entities"
)

type DanglingReason string

const (
	DanglingTextMissing    DanglingReason = "text_missing"
	DanglingChapterMissing DanglingReason = "chapter_missing"
	DanglingVerseMissing   DanglingReason = "verse_missing"
)

type DanglingAnnotation struct {
	entities.AnnotationRef
	Reason DanglingReason `json:"reason"`
}

// FindDangling reports annotations whose position no longer resolves in the
// library, for example after a text was renamed. Nothing is changed.
func FindDangling(texts []entities.Text, refs []entities.AnnotationRef) []DanglingAnnotation {
	type chapterKey struct {
		title  string
		number int
	}
	type verseKey struct {
		chapterKey
		number int
	}

	titles := make(map[string]bool, len(texts))
	chapters := make(map[chapterKey]bool)
	verses := make(map[verseKey]bool)
	for _, t := range texts {
		titles[t.Title] = true
		for _, ch := range t.Chapters {
			ck := chapterKey{t.Title, ch.Number}
			chapters[ck] = true
			for _, v := range ch.Verses {
				verses[verseKey{ck, v.Number}] = true
			}
		}
	}

	dangling := []DanglingAnnotation{}
	for _, ref := range refs {
		pos := ref.Position
		ck := chapterKey{pos.TextTitle, pos.ChapterNumber}
		var reason DanglingReason
		switch {
		case !titles[pos.TextTitle]:
			reason = DanglingTextMissing
		case !chapters[ck]:
			reason = DanglingChapterMissing
		case pos.VerseNumber != nil && !verses[verseKey{ck, *pos.VerseNumber}]:
			reason = DanglingVerseMissing
		default:
			continue
		}
		dangling = append(dangling, DanglingAnnotation{AnnotationRef: ref, Reason: reason})
	}
	return dangling
}
