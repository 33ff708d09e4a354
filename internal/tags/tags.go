// Package tags reads the identity fields from a music file's metadata.
package tags

import (
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
)

// Tag holds the fields needed to identify a track.
type Tag struct {
	Title  string
	Artist string
	Album  string
}

// Read reads tag metadata from a music file. A file with no title tag
// falls back to its base name.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	return &Tag{
		Title:  title,
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}
