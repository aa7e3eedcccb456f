package entities

type AnnotationKind string

const (
	AnnotationBookmark  AnnotationKind = "bookmark"
	AnnotationNote      AnnotationKind = "note"
	AnnotationHighlight AnnotationKind = "highlight"
	AnnotationHistory   AnnotationKind = "reading_history"
)

// AnnotationRef identifies one annotation row and the position it points at.
type AnnotationRef struct {
	Kind     AnnotationKind `json:"kind"`
	ID       string         `json:"id"`
	Position Position       `json:"position"`
}
