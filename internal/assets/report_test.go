package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/git-hub-cc/MediaHub/internal/extract"
)

func TestActorReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miss.md")
	people := []extract.Person{
		{Name: "Ann Wu", Role: "Lead"},
		{Name: "Jane Doe", Role: "Driver & Fixer", TMDBID: "501"},
	}
	require.NoError(t, WriteActorReport(path, people))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<actor>")
	assert.Contains(t, string(data), "<type>Actor</type>")
	assert.Contains(t, string(data), "Driver &amp; Fixer")

	got, err := ParseActorReport(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, extract.Person{Name: "Ann Wu", Role: "Lead"}, got[0])
	assert.Equal(t, extract.Person{Name: "Jane Doe", Role: "Driver & Fixer", TMDBID: "501"}, got[1])
}

func TestActorReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miss.md")
	require.NoError(t, WriteActorReport(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!--"))

	got, err := ParseActorReport(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseActorReportDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miss.md")
	report := `<actor><name>Jane Doe</name><role>Driver</role></actor>
<actor><name>Jane Doe</name><role>Other</role><tmdbid>501</tmdbid></actor>`
	require.NoError(t, os.WriteFile(path, []byte(report), 0o644))

	got, err := ParseActorReport(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	// First occurrence wins; the duplicate only backfills the id.
	assert.Equal(t, extract.Person{Name: "Jane Doe", Role: "Driver", TMDBID: "501"}, got[0])
}

func TestStudioReportRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_studios.md")
	require.NoError(t, WriteStudioReport(path, []string{"Acme Films", "Orbit Pictures"}))

	got, err := ParseStudioReport(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Films", "Orbit Pictures"}, got)
}

func TestStudioReportEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_studios.md")
	require.NoError(t, WriteStudioReport(path, nil))

	got, err := ParseStudioReport(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
