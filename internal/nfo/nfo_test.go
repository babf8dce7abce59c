package nfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const sampleNFO = `<?xml version="1.0" encoding="UTF-8"?>
<movie>
  <plot>A heist goes sideways.</plot>
  <year>2019</year>
  <rating>7.4</rating>
  <runtime>108</runtime>
  <genre>Crime</genre>
  <genre>Drama</genre>
  <studio>Acme Films</studio>
  <studio>Northlight</studio>
  <set><name>Heist Collection</name></set>
  <actor>
    <name>Jane Doe</name>
    <role>Driver</role>
    <tmdbid>501</tmdbid>
    <thumb>https://example.test/jane.jpg</thumb>
  </actor>
  <actor>
    <name>John Roe</name>
    <role>Fence</role>
  </actor>
</movie>`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleNFO))
	require.NoError(t, err)

	assert.Equal(t, "A heist goes sideways.", m.Plot)
	require.NotNil(t, m.Year)
	assert.Equal(t, 2019, *m.Year)
	require.NotNil(t, m.Rating)
	assert.InDelta(t, 7.4, *m.Rating, 0.001)
	require.NotNil(t, m.Runtime)
	assert.Equal(t, 108, *m.Runtime)
	assert.Equal(t, []string{"Crime", "Drama"}, m.Genres)
	assert.Equal(t, []string{"Acme Films", "Northlight"}, m.Studios)
	assert.Equal(t, "Heist Collection", m.Collection)

	require.Len(t, m.Actors, 2)
	assert.Equal(t, Actor{Name: "Jane Doe", Role: "Driver", TMDBID: "501", Thumb: "https://example.test/jane.jpg"}, m.Actors[0])
	assert.Equal(t, Actor{Name: "John Roe", Role: "Fence"}, m.Actors[1])
}

func TestParseMissingFields(t *testing.T) {
	m, err := Parse([]byte(`<movie><title>Bare</title></movie>`))
	require.NoError(t, err)

	assert.Empty(t, m.Plot)
	assert.Nil(t, m.Year)
	assert.Nil(t, m.Rating)
	assert.Nil(t, m.Runtime)
	assert.Empty(t, m.Genres)
	assert.Empty(t, m.Actors)
}

func TestParseBadNumbersFailSoft(t *testing.T) {
	m, err := Parse([]byte(`<movie><year>19xx</year><rating>N/A</rating><runtime></runtime></movie>`))
	require.NoError(t, err)

	assert.Nil(t, m.Year)
	assert.Nil(t, m.Rating)
	assert.Nil(t, m.Runtime)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte(`<movie><plot>unterminated`))
	assert.Error(t, err)
}

func TestParseGBKFallback(t *testing.T) {
	// "电影" is stored GBK-encoded, which is invalid UTF-8.
	utf8Doc := `<movie><plot>电影</plot><studio>华谊兄弟</studio></movie>`
	gbk, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(utf8Doc))
	require.NoError(t, err)

	m, err := Parse(gbk)
	require.NoError(t, err)
	assert.Equal(t, "电影", m.Plot)
	assert.Equal(t, []string{"华谊兄弟"}, m.Studios)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.nfo")
	require.NoError(t, os.WriteFile(path, []byte(sampleNFO), 0o644))

	m, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Heist Collection", m.Collection)

	_, err = ParseFile(filepath.Join(dir, "absent.nfo"))
	assert.Error(t, err)
}

func TestActorHasThumb(t *testing.T) {
	assert.False(t, Actor{}.HasThumb())
	assert.False(t, Actor{Thumb: "   "}.HasThumb())
	assert.True(t, Actor{Thumb: "x.jpg"}.HasThumb())
}
