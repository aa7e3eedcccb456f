// Package catalog holds the fixed set of works shipped with the reader.
//
// Each work is one YAML document under works/, embedded at build time. The
// title is the canonical key used by the document store and by every
// annotation; aliases list earlier titles the same work was stored under.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/sutra/internal/entities"
)

//go:embed works/*.yaml
var embeddedWorks embed.FS

type Work struct {
	Title       string    `yaml:"title"`
	Aliases     []string  `yaml:"aliases"`
	Author      string    `yaml:"author"`
	Description string    `yaml:"description"`
	Category    string    `yaml:"category"`
	Chapters    []Chapter `yaml:"chapters"`
}

type Chapter struct {
	Number int     `yaml:"number"`
	Title  string  `yaml:"title"`
	Verses []Verse `yaml:"verses"`
}

type Verse struct {
	Number          int    `yaml:"number"`
	Text            string `yaml:"text"`
	Notation        string `yaml:"notation"`
	Transliteration string `yaml:"transliteration"`
	OriginalScript  string `yaml:"original_script"`
}

// Load returns the embedded catalog ordered by file name.
func Load() ([]Work, error) {
	return LoadFS(embeddedWorks, "works/*.yaml")
}

// LoadFS reads every file matching pattern in fsys. fs.Glob sorts matches, so
// the result order is stable across runs.
func LoadFS(fsys fs.FS, pattern string) ([]Work, error) {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob catalog: %w", err)
	}

	works := make([]Work, 0, len(files))
	seen := make(map[string]string)
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		work, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(file), err)
		}
		for _, name := range work.Names() {
			if prev, ok := seen[name]; ok {
				return nil, fmt.Errorf("%s: name %q already used by %s", path.Base(file), name, prev)
			}
			seen[name] = path.Base(file)
		}
		works = append(works, work)
	}
	return works, nil
}

// Parse decodes and validates a single work.
func Parse(data []byte) (Work, error) {
	var w Work
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Work{}, fmt.Errorf("decode work: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Work{}, err
	}
	return w, nil
}

func (w Work) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return &entities.ValidationError{Field: "title", Message: "must be provided"}
	}

	chapters := make(map[int]bool, len(w.Chapters))
	for _, ch := range w.Chapters {
		if chapters[ch.Number] {
			return &entities.ValidationError{
				Field:   "chapter",
				Value:   fmt.Sprint(ch.Number),
				Message: fmt.Sprintf("duplicate chapter number in %q", w.Title),
			}
		}
		chapters[ch.Number] = true

		verses := make(map[int]bool, len(ch.Verses))
		for _, v := range ch.Verses {
			if verses[v.Number] {
				return &entities.ValidationError{
					Field:   "verse",
					Value:   fmt.Sprint(v.Number),
					Message: fmt.Sprintf("duplicate verse number in %q chapter %d", w.Title, ch.Number),
				}
			}
			verses[v.Number] = true
		}
	}
	return nil
}

// Names returns the canonical title followed by its aliases.
func (w Work) Names() []string {
	names := make([]string, 0, 1+len(w.Aliases))
	names = append(names, w.Title)
	names = append(names, w.Aliases...)
	return names
}

// ToText builds a fresh entity tree ready for insertion. IDs are left empty
// and are assigned on create.
func (w Work) ToText() *entities.Text {
	text := &entities.Text{
		Title:       w.Title,
		Author:      optional(w.Author),
		Description: optional(w.Description),
		Category:    w.Category,
	}
	if text.Category == "" {
		text.Category = "Sutra"
	}

	text.Chapters = make([]entities.Chapter, 0, len(w.Chapters))
	for _, ch := range w.Chapters {
		chapter := entities.Chapter{
			Number: ch.Number,
			Title:  ch.Title,
			Verses: make([]entities.Verse, 0, len(ch.Verses)),
		}
		for _, v := range ch.Verses {
			chapter.Verses = append(chapter.Verses, entities.Verse{
				Number:          v.Number,
				Text:            strings.TrimSpace(v.Text),
				Notation:        optional(v.Notation),
				Transliteration: optional(v.Transliteration),
				OriginalScript:  optional(v.OriginalScript),
			})
		}
		text.Chapters = append(text.Chapters, chapter)
	}
	return text
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
