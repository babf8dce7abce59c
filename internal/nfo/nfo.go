// Package nfo reads Kodi/Emby-style sidecar metadata documents.
package nfo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Actor is one cast member credit.
type Actor struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	TMDBID string `json:"tmdbid,omitempty"`
	Thumb  string `json:"thumb,omitempty"`
}

// HasThumb reports whether the credit carries a usable direct image
// reference. Whitespace-only values count as absent.
func (a Actor) HasThumb() bool {
	return strings.TrimSpace(a.Thumb) != ""
}

// Metadata is the parsed content of one NFO document. Numeric fields are nil
// when the source element is missing or unparseable; parse failures on
// individual fields never fail the document.
type Metadata struct {
	Plot       string   `json:"plot"`
	Year       *int     `json:"year"`
	Rating     *float64 `json:"rating"`
	Runtime    *int     `json:"runtime"`
	Genres     []string `json:"genres"`
	Studios    []string `json:"studios"`
	Collection string   `json:"collection"`
	Actors     []Actor  `json:"actors"`
}

// document mirrors the NFO XML schema. The root element name varies
// (movie, tvshow, episodedetails), so it is left unconstrained.
type document struct {
	Plot    string   `xml:"plot"`
	Year    string   `xml:"year"`
	Rating  string   `xml:"rating"`
	Runtime string   `xml:"runtime"`
	Genres  []string `xml:"genre"`
	Studios []string `xml:"studio"`
	Set     struct {
		Name string `xml:"name"`
	} `xml:"set"`
	Actors []struct {
		Name   string `xml:"name"`
		Role   string `xml:"role"`
		TMDBID string `xml:"tmdbid"`
		Thumb  string `xml:"thumb"`
	} `xml:"actor"`
}

// Parse decodes an NFO document. Input is expected to be UTF-8; on a decode
// failure a GBK fallback is attempted before giving up, since legacy
// libraries carry NFO files in that encoding.
func Parse(data []byte) (*Metadata, error) {
	var doc document
	err := unmarshal(data, &doc)
	if err != nil {
		decoded, _, derr := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), data)
		if derr != nil || unmarshal(decoded, &doc) != nil {
			return nil, fmt.Errorf("parse nfo: %w", err)
		}
	}

	m := &Metadata{
		Plot:       strings.TrimSpace(doc.Plot),
		Year:       parseInt(doc.Year),
		Rating:     parseFloat(doc.Rating),
		Runtime:    parseInt(doc.Runtime),
		Genres:     cleanStrings(doc.Genres),
		Studios:    cleanStrings(doc.Studios),
		Collection: strings.TrimSpace(doc.Set.Name),
	}
	for _, a := range doc.Actors {
		m.Actors = append(m.Actors, Actor{
			Name:   strings.TrimSpace(a.Name),
			Role:   strings.TrimSpace(a.Role),
			TMDBID: strings.TrimSpace(a.TMDBID),
			Thumb:  strings.TrimSpace(a.Thumb),
		})
	}
	return m, nil
}

// ParseFile reads and parses the NFO document at path.
func ParseFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nfo: %w", err)
	}
	return Parse(data)
}

func unmarshal(data []byte, doc *document) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	// Declared charsets other than UTF-8 show up in the wild; the payload has
	// already been transcoded by the time we get here.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec.Decode(doc)
}

func parseInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

func cleanStrings(ss []string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
