package library

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates empty files (and their parent directories) below root.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func TestScanRootMustBeDirectory(t *testing.T) {
	s := NewScanner(0, 0, testLogger())

	_, err := s.Scan(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotDirectory)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = s.Scan(file)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestScanMovie(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"MovieA/movie.nfo",
		"MovieA/poster.jpg",
		"MovieA/fanart.jpg",
		"MovieA/MovieA.strm",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	require.Len(t, idx.Movies, 1)
	assert.Empty(t, idx.TVShows)

	entry := idx.Movies[0]
	assert.Equal(t, "MovieA", entry.Path)
	assert.Equal(t, KindMovie, entry.Kind)
	assert.ElementsMatch(t,
		[]string{CategoryMovieNFO, CategoryPoster, CategoryFanart, CategoryStrm},
		entry.Files.Categories())

	// Each category holds exactly one file and serializes as a bare string.
	data, err := json.Marshal(entry.Files)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"movie_nfo": "movie.nfo",
		"poster_image": "poster.jpg",
		"fanart_image": "fanart.jpg",
		"strm": "MovieA.strm"
	}`, string(data))
}

func TestScanLooseNFOWithPoster(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"MovieB/MovieB.nfo",
		"MovieB/cover.jpg",
		// NFO without any poster-like image stays unclassified.
		"NotMedia/readme.nfo",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	require.Len(t, idx.Movies, 1)
	assert.Equal(t, "MovieB", idx.Movies[0].Path)
}

func TestScanTVShowBySeasonDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"ShowA/Season 1/ep1.nfo",
		"ShowA/Season 1/ep1.strm",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	require.Len(t, idx.TVShows, 1)
	assert.Equal(t, "ShowA", idx.TVShows[0].Path)
}

func TestClassificationPrecedence(t *testing.T) {
	// tvshow.nfo beats movie.nfo.
	root := t.TempDir()
	writeTree(t, root,
		"Ambiguous/tvshow.nfo",
		"Ambiguous/movie.nfo",
		"Ambiguous/poster.jpg",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	assert.Empty(t, idx.Movies)
	require.Len(t, idx.TVShows, 1)
	assert.Equal(t, "Ambiguous", idx.TVShows[0].Path)
}

func TestSubtreeClaiming(t *testing.T) {
	// A show's season dirs contain NFO+poster pairs that would classify as
	// movies if visited independently; claiming must prevent that.
	root := t.TempDir()
	writeTree(t, root,
		"ShowA/tvshow.nfo",
		"ShowA/Season 1/ep1.nfo",
		"ShowA/Season 1/poster.jpg",
		"ShowA/extras/trailer.nfo",
		"ShowA/extras/folder.jpg",
		"MovieA/movie.nfo",
		"MovieA/poster.jpg",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	require.Len(t, idx.TVShows, 1)
	require.Len(t, idx.Movies, 1)
	assert.Equal(t, "ShowA", idx.TVShows[0].Path)
	assert.Equal(t, "MovieA", idx.Movies[0].Path)

	for _, e := range idx.Entries() {
		assert.False(t, strings.HasPrefix(e.Path, `ShowA\`),
			"descendant of claimed subtree indexed separately: %s", e.Path)
	}
}

func TestTVShowGroupingAndNaturalSort(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"ShowA/tvshow.nfo",
		"ShowA/season.nfo",
		"ShowA/poster.jpg",
		"ShowA/season1-poster.jpg",
		"ShowA/season1-banner.jpg",
		"ShowA/Season 1/ep10.nfo",
		"ShowA/Season 1/ep2.nfo",
		"ShowA/Season 1/ep1.nfo",
		"ShowA/Season 1/ep1.strm",
		"ShowA/Season 2/ep1.nfo",
		"ShowA/Season 1/ep1.ass",
		"ShowA/Season 1/ep1-mediainfo.json",
		"ShowA/Season 1/notes.txt",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)
	require.Len(t, idx.TVShows, 1)

	files := idx.TVShows[0].Files
	assert.Equal(t, []string{"tvshow.nfo"}, files.All(CategoryTVShowNFO))
	assert.Equal(t, []string{"season.nfo"}, files.All(CategorySeasonNFO))
	assert.Equal(t, []string{"season1-poster.jpg"}, files.All(CategorySeasonPoster))
	assert.Equal(t, []string{"season1-banner.jpg"}, files.All(CategorySeasonBanner))
	assert.Equal(t, []string{`Season 1\ep1.ass`}, files.All(CategorySubtitle))
	assert.Equal(t, []string{`Season 1\ep1-mediainfo.json`}, files.All(CategoryMediainfoJSON))
	assert.Equal(t, []string{`Season 1\notes.txt`}, files.All(CategoryOther))

	nfoList, ok := files.Get(CategoryNFO)
	require.True(t, ok)
	require.True(t, nfoList.IsGrouped())
	require.Len(t, nfoList.Groups, 2)
	assert.Equal(t, "Season 1", nfoList.Groups[0].Dir)
	assert.Equal(t,
		[]string{`Season 1\ep1.nfo`, `Season 1\ep2.nfo`, `Season 1\ep10.nfo`},
		nfoList.Groups[0].Paths, "episode NFOs must be naturally sorted")
	assert.Equal(t, "Season 2", nfoList.Groups[1].Dir)

	strmList, ok := files.Get(CategoryStrm)
	require.True(t, ok)
	assert.True(t, strmList.IsGrouped())
}

func TestScanCaps(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"Movie1/movie.nfo",
		"Movie2/movie.nfo",
		"Movie3/movie.nfo",
		"Show1/tvshow.nfo",
		"Show2/tvshow.nfo",
	)

	idx, err := NewScanner(2, 1, testLogger()).Scan(root)
	require.NoError(t, err)

	// Hitting the movie cap must not stop TV show discovery and vice versa.
	assert.Len(t, idx.Movies, 2)
	assert.Len(t, idx.TVShows, 1)
}

func TestScanIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"MovieA/movie.nfo",
		"MovieA/poster.jpg",
		"ShowA/tvshow.nfo",
		"ShowA/Season 1/ep2.nfo",
		"ShowA/Season 1/ep10.nfo",
	)

	s := NewScanner(0, 0, testLogger())
	first, err := s.Scan(root)
	require.NoError(t, err)
	second, err := s.Scan(root)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestIndexSaveLoad(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"MovieA/movie.nfo",
		"ShowA/tvshow.nfo",
		"ShowA/Season 1/ep1.nfo",
	)

	idx, err := NewScanner(0, 0, testLogger()).Scan(root)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "media_index.json")
	require.NoError(t, idx.Save(path))

	got, err := LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, idx, got)

	_, err = LoadIndex(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestFromIndexPath(t *testing.T) {
	assert.Equal(t, "/lib", FromIndexPath("/lib", "."))
	assert.Equal(t,
		filepath.Join("/lib", "ShowA", "Season 1", "ep1.nfo"),
		FromIndexPath("/lib", `ShowA\Season 1\ep1.nfo`))
}
