package entities

import "strings"

type HighlightColor string

const (
	HighlightColorYellow HighlightColor = "yellow"
	HighlightColorGreen  HighlightColor = "green"
	HighlightColorBlue   HighlightColor = "blue"
	HighlightColorPink   HighlightColor = "pink"
	HighlightColorPurple HighlightColor = "purple"

	DefaultHighlightColor = HighlightColorYellow
)

// HighlightColors lists the accepted colours in picker order.
var HighlightColors = []HighlightColor{
	HighlightColorYellow,
	HighlightColorGreen,
	HighlightColorBlue,
	HighlightColorPink,
	HighlightColorPurple,
}

func (c HighlightColor) IsValid() bool {
	for _, known := range HighlightColors {
		if c == known {
			return true
		}
	}
	return false
}

// ParseHighlightColor accepts only the fixed colour set (case-insensitive).
func ParseHighlightColor(s string) (HighlightColor, error) {
	c := HighlightColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", &ValidationError{Field: "color", Value: s, Message: "must be one of yellow, green, blue, pink, purple"}
	}
	return c, nil
}
