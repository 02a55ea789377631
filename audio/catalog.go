package audio

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog maps track IDs to playable sources found under a music directory.
// The ID is the slash-separated path relative to the scanned root, without
// its extension, so files sharing a name in different subdirectories keep
// distinct entries.
type Catalog struct {
	tracks map[string]string
}

// supportedExtensions lists the formats the loader can decode
var supportedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
}

// NewCatalog scans a directory tree for playable audio files
func NewCatalog(dir string) (*Catalog, error) {
	tracks := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !supportedExtensions[ext] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		id := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
		tracks[id] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning catalog %q: %w", dir, err)
	}

	return &Catalog{tracks: tracks}, nil
}

// Resolve returns the source path for a track ID
func (c *Catalog) Resolve(id string) (string, bool) {
	path, ok := c.tracks[id]
	return path, ok
}

// Tracks returns all known track IDs in sorted order
func (c *Catalog) Tracks() []string {
	ids := make([]string, 0, len(c.tracks))
	for id := range c.tracks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load resolves and decodes a catalog track
func (c *Catalog) Load(id string) (*Track, error) {
	path, ok := c.Resolve(id)
	if !ok {
		return nil, fmt.Errorf("unknown catalog track %q", id)
	}
	return LoadSource(path)
}
