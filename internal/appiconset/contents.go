// Package appiconset writes the Contents.json manifest an Xcode asset
// catalog expects next to the generated icon files. Filenames, idioms,
// scales and point sizes come straight from the spec table, so the
// manifest always matches what was written.
package appiconset

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/cwalker-code/generate-flutter-icons/internal/iconspec"
)

type imageEntry struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

type info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

type contents struct {
	Images []imageEntry `json:"images"`
	Info   info         `json:"info"`
}

// Contents renders the manifest for the given appiconset specs. Specs
// without catalog metadata are a programming error (they belong to a
// platform that has no asset catalog).
func Contents(specs []iconspec.Spec) ([]byte, error) {
	c := contents{
		Images: make([]imageEntry, 0, len(specs)),
		Info:   info{Author: "flutter-icons", Version: 1},
	}
	for _, s := range specs {
		if s.Idiom == "" || s.Scale == "" || s.Point == "" {
			return nil, fmt.Errorf("appiconset: spec %q has no catalog metadata", s.Path)
		}
		c.Images = append(c.Images, imageEntry{
			Filename: path.Base(s.Path),
			Idiom:    s.Idiom,
			Scale:    s.Scale,
			Size:     s.Point,
		})
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("appiconset: marshal: %w", err)
	}
	return append(data, '\n'), nil
}
