package library

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/git-hub-cc/MediaHub/pkg/natsort"
)

// ErrNotDirectory is returned when the scan root does not exist or is not a
// directory.
var ErrNotDirectory = errors.New("not a directory")

// DefaultMaxItems is the per-kind entry cap applied when no explicit cap is
// configured.
const DefaultMaxItems = 50000

const (
	tvshowNFOName = "tvshow.nfo"
	movieNFOName  = "movie.nfo"
	seasonNFOName = "season.nfo"
)

// seasonDirPattern matches season directories like "Season 1", "season02".
var seasonDirPattern = regexp.MustCompile(`^season\s*\d+$`)

// posterIndicators are the movie-level image filenames that, combined with a
// loose NFO file, classify a directory as a movie.
var posterIndicators = map[string]bool{
	"poster.jpg": true,
	"fanart.jpg": true,
	"cover.jpg":  true,
	"folder.jpg": true,
	"movie.jpg":  true,
}

// categoryRule assigns one manifest category per filename. Rules are
// evaluated in order; the first match wins.
type categoryRule struct {
	match    func(nameLower string) bool
	category string
}

var categoryRules = []categoryRule{
	{exact(tvshowNFOName), CategoryTVShowNFO},
	{exact(movieNFOName), CategoryMovieNFO},
	{exact(seasonNFOName), CategorySeasonNFO},
	{suffix(".nfo"), CategoryNFO},
	{suffix(".strm"), CategoryStrm},
	{oneOf("folder.jpg", "cover.jpg", "movie.jpg", "poster.jpg"), CategoryPoster},
	{oneOf("banner.jpg", "fanart.jpg"), CategoryFanart},
	{pattern(`^season\d+-banner\.jpg$`), CategorySeasonBanner},
	{pattern(`^season\d+-poster\.jpg$`), CategorySeasonPoster},
	{suffix(".ass"), CategorySubtitle},
	{suffix("-mediainfo.json"), CategoryMediainfoJSON},
}

func exact(want string) func(string) bool {
	return func(name string) bool { return name == want }
}

func suffix(want string) func(string) bool {
	return func(name string) bool { return strings.HasSuffix(name, want) }
}

func oneOf(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func pattern(expr string) func(string) bool {
	re := regexp.MustCompile(expr)
	return re.MatchString
}

// categorize returns the manifest category for a filename.
func categorize(nameLower string) string {
	for _, r := range categoryRules {
		if r.match(nameLower) {
			return r.category
		}
	}
	return CategoryOther
}

// Scanner walks a library root and classifies media subtrees.
//
// Traversal is pre-order depth-first; once a directory is classified the
// scanner indexes its whole subtree and does not descend further, so nested
// season and extras folders never show up as independent entries. Unreadable
// directories are skipped with a warning.
type Scanner struct {
	maxMovies  int
	maxTVShows int
	log        *slog.Logger
}

// NewScanner creates a scanner with per-kind entry caps. Caps of zero or
// below fall back to DefaultMaxItems.
func NewScanner(maxMovies, maxTVShows int, logger *slog.Logger) *Scanner {
	if maxMovies <= 0 {
		maxMovies = DefaultMaxItems
	}
	if maxTVShows <= 0 {
		maxTVShows = DefaultMaxItems
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{maxMovies: maxMovies, maxTVShows: maxTVShows, log: logger}
}

// Scan builds a MediaIndex for the tree rooted at root.
func (s *Scanner) Scan(root string) (*MediaIndex, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("scan root %s: %w", root, ErrNotDirectory)
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	idx := &MediaIndex{}
	s.visit(rootAbs, rootAbs, idx)
	return idx, nil
}

// visit walks one directory. It returns true when both caps are reached and
// the walk should stop.
func (s *Scanner) visit(rootAbs, dir string, idx *MediaIndex) bool {
	if len(idx.Movies) >= s.maxMovies && len(idx.TVShows) >= s.maxTVShows {
		return true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return false
	}

	files := make(map[string]bool)
	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		} else {
			files[strings.ToLower(e.Name())] = true
		}
	}

	if kind := classify(files, subdirs); kind != "" {
		capped := (kind == KindMovie && len(idx.Movies) >= s.maxMovies) ||
			(kind == KindTVShow && len(idx.TVShows) >= s.maxTVShows)
		if !capped {
			entry := MediaEntry{
				Path:  entryPath(rootAbs, dir),
				Kind:  kind,
				Files: s.collect(dir, kind),
			}
			switch kind {
			case KindMovie:
				idx.Movies = append(idx.Movies, entry)
			case KindTVShow:
				idx.TVShows = append(idx.TVShows, entry)
			}
			s.log.Info("classified", "kind", kind, "path", entry.Path)
			// Classification claims the whole subtree.
			return false
		}
	}

	for _, name := range subdirs {
		if s.visit(rootAbs, filepath.Join(dir, name), idx) {
			return true
		}
	}
	return false
}

// classify applies the ordered classification rules to one directory.
// files holds lowercased filenames; subdirs the child directory names.
// Returns the empty Kind when the directory stays unclassified.
func classify(files map[string]bool, subdirs []string) Kind {
	if files[tvshowNFOName] {
		return KindTVShow
	}
	for _, d := range subdirs {
		if seasonDirPattern.MatchString(strings.ToLower(d)) {
			return KindTVShow
		}
	}
	if files[movieNFOName] {
		return KindMovie
	}
	looseNFO := false
	for name := range files {
		if strings.HasSuffix(name, ".nfo") && name != tvshowNFOName && name != seasonNFOName {
			looseNFO = true
			break
		}
	}
	if looseNFO {
		for name := range posterIndicators {
			if files[name] {
				return KindMovie
			}
		}
	}
	return ""
}

// collect performs the full sub-walk of a classified directory and assigns
// every contained file to a manifest category. For TV shows, episode NFO and
// STRM files are grouped by their immediate parent directory and each group
// is naturally sorted.
func (s *Scanner) collect(mediaRoot string, kind Kind) FileSet {
	var set FileSet
	s.collectDir(mediaRoot, mediaRoot, kind, &set)

	for _, cat := range []string{CategoryNFO, CategoryStrm} {
		if l, ok := set.Get(cat); ok && l.IsGrouped() {
			for _, g := range l.Groups {
				natsort.Sort(g.Paths)
			}
		}
	}
	return set
}

func (s *Scanner) collectDir(mediaRoot, dir string, kind Kind, set *FileSet) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warn("skipping unreadable directory", "dir", dir, "error", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		rel, err := filepath.Rel(mediaRoot, filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		s.record(mediaRoot, ToIndexPath(rel), strings.ToLower(e.Name()), kind, set)
	}
	for _, e := range entries {
		if e.IsDir() {
			s.collectDir(mediaRoot, filepath.Join(dir, e.Name()), kind, set)
		}
	}
}

func (s *Scanner) record(mediaRoot, rel, nameLower string, kind Kind, set *FileSet) {
	category := categorize(nameLower)

	grouped := kind == KindTVShow &&
		(category == CategoryNFO || category == CategoryStrm)
	if grouped {
		set.AppendGrouped(category, groupName(mediaRoot, rel), rel)
		return
	}
	set.Append(category, rel)
}

// groupName returns the grouping key for a TV episode file: the name of its
// immediate parent directory, or the media root's own name for files that
// sit directly in the media root.
func groupName(mediaRoot, rel string) string {
	parts := strings.Split(rel, Separator)
	if len(parts) > 1 {
		return parts[len(parts)-2]
	}
	return filepath.Base(mediaRoot)
}

// entryPath returns dir relative to the scan root in index separator
// convention; the root itself maps to ".".
func entryPath(rootAbs, dir string) string {
	rel, err := filepath.Rel(rootAbs, dir)
	if err != nil || rel == "." {
		return "."
	}
	return ToIndexPath(rel)
}
