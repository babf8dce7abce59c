// Package library models a scanned media library: classified media entries
// with categorized file manifests, and the scanner that builds them.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind distinguishes movies from TV shows.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindTVShow Kind = "tv_show"
)

// Manifest category keys. One key per recognized filename pattern; files
// matching nothing land in CategoryOther.
const (
	CategoryTVShowNFO     = "tvshow_nfo"
	CategoryMovieNFO      = "movie_nfo"
	CategorySeasonNFO     = "season_nfo"
	CategoryNFO           = "nfo"
	CategoryStrm          = "strm"
	CategoryPoster        = "poster_image"
	CategoryFanart        = "fanart_image"
	CategorySeasonPoster  = "season_poster_images"
	CategorySeasonBanner  = "season_banner_images"
	CategorySubtitle      = "ass"
	CategoryMediainfoJSON = "mediainfo_json"
	CategoryOther         = "other_files"
)

// Separator is the fixed path separator used inside index JSON, regardless
// of host OS. It matches the convention of the summary files this index is
// exchanged with.
const Separator = `\`

// MediaEntry is one classified media subtree. Path is relative to the scan
// root; every manifest path is relative to Path. Entries are never mutated
// after the scan that created them.
type MediaEntry struct {
	Path  string  `json:"path"`
	Kind  Kind    `json:"kind"`
	Files FileSet `json:"files"`
}

// MediaIndex is the result of one full library scan, in directory-walk order.
type MediaIndex struct {
	Movies  []MediaEntry `json:"movies"`
	TVShows []MediaEntry `json:"tv_shows"`
}

// Entries returns all entries, movies first, in walk order.
func (idx *MediaIndex) Entries() []MediaEntry {
	out := make([]MediaEntry, 0, len(idx.Movies)+len(idx.TVShows))
	out = append(out, idx.Movies...)
	out = append(out, idx.TVShows...)
	return out
}

// Save writes the index as indented UTF-8 JSON.
func (idx *MediaIndex) Save(path string) error {
	data, err := json.MarshalIndent(idx, "", "    ")
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// LoadIndex reads an index written by Save.
func LoadIndex(path string) (*MediaIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	var idx MediaIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", path, err)
	}
	return &idx, nil
}

// FromIndexPath converts an index-relative path (backslash separated) to a
// host filesystem path below root. An entry path of "." maps to root itself.
func FromIndexPath(root, rel string) string {
	if rel == "." || rel == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(strings.ReplaceAll(rel, Separator, "/")))
}

// ToIndexPath converts a slash- or OS-separated relative path to the index
// separator convention.
func ToIndexPath(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.ReplaceAll(rel, "/", Separator)
}
