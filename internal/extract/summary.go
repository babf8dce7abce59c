package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/git-hub-cc/MediaHub/internal/library"
	"github.com/git-hub-cc/MediaHub/internal/nfo"
)

// MovieFiles are the summary's required per-movie files, as slash-separated
// paths relative to the library root.
type MovieFiles struct {
	NFO    string `json:"nfo"`
	Strm   string `json:"strm"`
	Poster string `json:"poster"`
	Fanart string `json:"fanart"`
}

// MovieSummary is one movie's entry in movie_summary.json.
type MovieSummary struct {
	Title    string        `json:"title"`
	Files    MovieFiles    `json:"files"`
	Metadata *nfo.Metadata `json:"metadata"`
}

// Summarize builds the movie summary for every movie entry that carries the
// complete required file set (NFO, STRM, poster, fanart) and a parseable
// NFO. Incomplete entries are skipped with a warning. The result is sorted
// by metadata year, newest first.
func (e *Extractor) Summarize(root string, idx *library.MediaIndex) []MovieSummary {
	var out []MovieSummary
	for _, entry := range idx.Movies {
		s, ok := e.summarizeEntry(root, entry)
		if !ok {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return summaryYear(out[i]) > summaryYear(out[j])
	})
	return out
}

func (e *Extractor) summarizeEntry(root string, entry library.MediaEntry) (MovieSummary, bool) {
	files := MovieFiles{
		NFO:    preferredNFO(entry.Files),
		Strm:   firstOf(entry.Files, library.CategoryStrm),
		Poster: firstOf(entry.Files, library.CategoryPoster),
		Fanart: firstOf(entry.Files, library.CategoryFanart),
	}
	if missing := missingSummaryFiles(files); len(missing) > 0 {
		e.log.Warn("skipping incomplete movie entry",
			"path", entry.Path, "missing", strings.Join(missing, ", "))
		return MovieSummary{}, false
	}

	nfoPath := library.FromIndexPath(library.FromIndexPath(root, entry.Path), files.NFO)
	meta, err := nfo.ParseFile(nfoPath)
	if err != nil {
		e.log.Warn("skipping movie with unparseable nfo", "path", nfoPath, "error", err)
		return MovieSummary{}, false
	}

	return MovieSummary{
		Title:    entryTitle(root, entry.Path),
		Files:    rootRelative(entry.Path, files),
		Metadata: meta,
	}, true
}

// preferredNFO picks movie.nfo when present, otherwise the first loose NFO.
func preferredNFO(files library.FileSet) string {
	if p := firstOf(files, library.CategoryMovieNFO); p != "" {
		return p
	}
	return firstOf(files, library.CategoryNFO)
}

func firstOf(files library.FileSet, category string) string {
	all := files.All(category)
	if len(all) == 0 {
		return ""
	}
	return all[0]
}

func missingSummaryFiles(f MovieFiles) []string {
	var missing []string
	for _, part := range []struct{ name, value string }{
		{"nfo", f.NFO},
		{"strm", f.Strm},
		{"poster", f.Poster},
		{"fanart", f.Fanart},
	} {
		if part.value == "" {
			missing = append(missing, part.name)
		}
	}
	return missing
}

// rootRelative rewrites entry-relative manifest paths as slash-separated
// paths relative to the library root, the convention of the summary files.
func rootRelative(entryPath string, f MovieFiles) MovieFiles {
	join := func(rel string) string {
		rel = strings.ReplaceAll(rel, library.Separator, "/")
		if entryPath == "." || entryPath == "" {
			return rel
		}
		return path.Join(strings.ReplaceAll(entryPath, library.Separator, "/"), rel)
	}
	return MovieFiles{
		NFO:    join(f.NFO),
		Strm:   join(f.Strm),
		Poster: join(f.Poster),
		Fanart: join(f.Fanart),
	}
}

func entryTitle(root, entryPath string) string {
	if entryPath == "." || entryPath == "" {
		return path.Base(strings.ReplaceAll(root, "\\", "/"))
	}
	parts := strings.Split(entryPath, library.Separator)
	return parts[len(parts)-1]
}

func summaryYear(s MovieSummary) int {
	if s.Metadata == nil || s.Metadata.Year == nil {
		return 0
	}
	return *s.Metadata.Year
}

// SaveSummaries writes the movie summary file as indented UTF-8 JSON.
func SaveSummaries(path string, summaries []MovieSummary) error {
	if summaries == nil {
		summaries = []MovieSummary{}
	}
	data, err := json.MarshalIndent(summaries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// LoadSummaries reads a movie summary file written by SaveSummaries.
func LoadSummaries(path string) ([]MovieSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var out []MovieSummary
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse summary %s: %w", path, err)
	}
	return out, nil
}
