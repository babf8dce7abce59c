// Package assets tracks locally cached artwork: flat entity-to-path
// catalogs, the missing-asset reconciliation, and the report files exchanged
// between pipeline stages.
package assets

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Catalog maps an entity key to the relative path of its local asset.
// Cast member keys carry an id qualifier ("Name-tmdb-123") once artwork has
// been fetched; studio and plain keys are bare names.
type Catalog map[string]string

// LoadCatalog reads a catalog summary file. A missing or invalid file is a
// fatal input error for the calling stage.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Save writes the catalog as indented JSON with sorted keys.
func (c Catalog) Save(path string) error {
	return writeJSON(path, c)
}

// peopleImageName is the artwork filename the people cache stores per
// person directory.
const peopleImageName = "folder.jpg"

// studioLogoNames are the recognized studio logo filenames, checked in
// order of preference.
var studioLogoNames = []string{"landscape.jpg", "logo.png", "folder.jpg", "folder.png"}

// ScanPeople builds a people catalog by walking dir for folder.jpg files.
// The key is the containing directory's name; the value is the image path
// relative to base, slash-separated. A missing dir yields an empty catalog.
func ScanPeople(base, dir string, logger *slog.Logger) Catalog {
	c := Catalog{}
	if logger == nil {
		logger = slog.Default()
	}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if info.IsDir() || !strings.EqualFold(info.Name(), peopleImageName) {
			return nil
		}
		c[filepath.Base(filepath.Dir(path))] = slashRel(base, path)
		return nil
	})
	if err != nil {
		logger.Warn("people scan incomplete", "dir", dir, "error", err)
	}
	return c
}

// ScanStudios builds a studio catalog from the immediate children of dir:
// one directory per studio, holding one of the recognized logo filenames.
func ScanStudios(base, dir string, logger *slog.Logger) Catalog {
	c := Catalog{}
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("studio dir unreadable", "dir", dir, "error", err)
		return c
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		for _, logo := range studioLogoNames {
			p := filepath.Join(dir, e.Name(), logo)
			if _, err := os.Stat(p); err == nil {
				c[e.Name()] = slashRel(base, p)
				break
			}
		}
	}
	return c
}

// CollectionArt is one collection's artwork pair.
type CollectionArt struct {
	Poster string `json:"poster,omitempty"`
	Fanart string `json:"fanart,omitempty"`
}

// ScanCollections builds the collection artwork summary from the immediate
// children of dir. Collections with neither a poster nor a fanart are
// omitted.
func ScanCollections(base, dir string, logger *slog.Logger) map[string]CollectionArt {
	out := map[string]CollectionArt{}
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("collections dir unreadable", "dir", dir, "error", err)
		return out
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		var art CollectionArt
		if p := filepath.Join(dir, e.Name(), "poster.jpg"); exists(p) {
			art.Poster = slashRel(base, p)
		}
		if p := filepath.Join(dir, e.Name(), "fanart.jpg"); exists(p) {
			art.Fanart = slashRel(base, p)
		}
		if art != (CollectionArt{}) {
			out[e.Name()] = art
		}
	}
	return out
}

// SaveCollections writes the collection summary with sorted keys.
func SaveCollections(path string, m map[string]CollectionArt) error {
	return writeJSON(path, m)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// slashRel returns path relative to base with forward slashes, the summary
// file convention. Falls back to the path itself when it is not below base.
func slashRel(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// writeJSON marshals v indented (map keys come out sorted) and writes it.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
