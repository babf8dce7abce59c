package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-hub-cc/MediaHub/internal/assets"
	"github.com/git-hub-cc/MediaHub/internal/library"
)

// writeTestConfig points every path the missing stage touches into dir and
// swaps the global config path for the duration of the test.
func writeTestConfig(t *testing.T, dir string) {
	t.Helper()
	content := fmt.Sprintf(`
[library]
root = %q
index_path = %q

[summaries]
people = %q
studios = %q

[reports]
actors = %q
studios = %q
`,
		dir,
		filepath.Join(dir, "media_index.json"),
		filepath.Join(dir, "people_summary.json"),
		filepath.Join(dir, "studios_summary.json"),
		filepath.Join(dir, "miss.md"),
		filepath.Join(dir, "missing_studios.md"),
	)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	prev := configPath
	configPath = path
	t.Cleanup(func() { configPath = prev })
}

func TestRunMissingActors_AbsentCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir)

	idx := &library.MediaIndex{}
	require.NoError(t, idx.Save(filepath.Join(dir, "media_index.json")))

	err := runMissingActors(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "people catalog")
	assert.NoFileExists(t, filepath.Join(dir, "miss.md"))
}

func TestRunMissingStudios_AbsentCatalogIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir)

	idx := &library.MediaIndex{}
	require.NoError(t, idx.Save(filepath.Join(dir, "media_index.json")))

	err := runMissingStudios(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "studio catalog")
}

func TestRunMissingActors_EmptyCatalogRuns(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir)

	idx := &library.MediaIndex{}
	require.NoError(t, idx.Save(filepath.Join(dir, "media_index.json")))
	require.NoError(t, assets.Catalog{}.Save(filepath.Join(dir, "people_summary.json")))

	require.NoError(t, runMissingActors(nil, nil))
	assert.FileExists(t, filepath.Join(dir, "miss.md"))
}
