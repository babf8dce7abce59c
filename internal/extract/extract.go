// Package extract derives entity sets and summaries from a scanned
// MediaIndex by resolving and parsing the NFO documents it references.
package extract

import (
	"log/slog"
	"os"

	"github.com/git-hub-cc/MediaHub/internal/library"
	"github.com/git-hub-cc/MediaHub/internal/nfo"
)

// Person is a unique cast member referenced by the library. Identity is the
// raw name; TMDBID and Thumb are auxiliary lookup data.
type Person struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	TMDBID string `json:"tmdbid,omitempty"`
	Thumb  string `json:"thumb,omitempty"`
}

// Result accumulates the unique entities found across all parsed NFO files,
// in first-seen order.
type Result struct {
	People      []Person
	Studios     []string
	Collections []string
}

// nfoCategories are the manifest categories whose files are NFO documents.
var nfoCategories = []string{
	library.CategoryTVShowNFO,
	library.CategoryMovieNFO,
	library.CategorySeasonNFO,
	library.CategoryNFO,
}

// Extractor walks a MediaIndex and parses every referenced NFO document.
// Missing files and malformed documents are skipped with a warning; they
// never abort the extraction.
type Extractor struct {
	log *slog.Logger
}

// NewExtractor creates an extractor. A nil logger falls back to the default.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{log: logger}
}

// Entities resolves every NFO referenced by the index against root, parses
// it, and returns the union of cast members, studios, and collections.
// Duplicate NFO references are parsed once.
func (e *Extractor) Entities(root string, idx *library.MediaIndex) *Result {
	res := &Result{}
	people := make(map[string]int) // name -> index into res.People
	studios := make(map[string]bool)
	collections := make(map[string]bool)
	seen := make(map[string]bool) // deduplicated NFO paths

	for _, entry := range idx.Entries() {
		for _, cat := range nfoCategories {
			for _, rel := range entry.Files.All(cat) {
				path := library.FromIndexPath(library.FromIndexPath(root, entry.Path), rel)
				if seen[path] {
					continue
				}
				seen[path] = true
				e.accumulate(path, res, people, studios, collections)
			}
		}
	}
	return res
}

func (e *Extractor) accumulate(path string, res *Result, people map[string]int, studios, collections map[string]bool) {
	if _, err := os.Stat(path); err != nil {
		e.log.Warn("referenced nfo missing on disk", "path", path)
		return
	}
	meta, err := nfo.ParseFile(path)
	if err != nil {
		e.log.Warn("skipping unparseable nfo", "path", path, "error", err)
		return
	}

	for _, a := range meta.Actors {
		if a.Name == "" {
			continue
		}
		if i, ok := people[a.Name]; ok {
			// First occurrence wins, but a later credit may contribute a
			// TMDb id the first one lacked.
			if res.People[i].TMDBID == "" && a.TMDBID != "" {
				res.People[i].TMDBID = a.TMDBID
			}
			continue
		}
		people[a.Name] = len(res.People)
		res.People = append(res.People, Person{
			Name:   a.Name,
			Role:   a.Role,
			TMDBID: a.TMDBID,
			Thumb:  a.Thumb,
		})
	}
	for _, s := range meta.Studios {
		if s != "" && !studios[s] {
			studios[s] = true
			res.Studios = append(res.Studios, s)
		}
	}
	if c := meta.Collection; c != "" && !collections[c] {
		collections[c] = true
		res.Collections = append(res.Collections, c)
	}
}
