package assets

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/git-hub-cc/MediaHub/internal/extract"
)

// The report files are the handoff between the reconciliation and fetch
// stages: missing cast members as a sequence of <actor> XML blocks (ready to
// paste back into an NFO), missing studios as a Markdown bullet list.

const noMissingActorsMarker = "<!-- No missing actors found. -->"

type actorBlock struct {
	XMLName xml.Name `xml:"actor"`
	Name    string   `xml:"name"`
	Role    string   `xml:"role"`
	Type    string   `xml:"type"`
	TMDBID  string   `xml:"tmdbid,omitempty"`
}

// WriteActorReport writes the missing-actor report. An empty list produces
// a marker comment so downstream stages can tell "ran, nothing missing"
// from "never ran".
func WriteActorReport(path string, people []extract.Person) error {
	var buf bytes.Buffer
	if len(people) == 0 {
		buf.WriteString(noMissingActorsMarker + "\n")
		return writeFile(path, buf.Bytes())
	}
	enc := xml.NewEncoder(&buf)
	enc.Indent("  ", "  ")
	for _, p := range people {
		block := actorBlock{Name: p.Name, Role: p.Role, Type: "Actor", TMDBID: p.TMDBID}
		if err := enc.Encode(block); err != nil {
			return fmt.Errorf("encode actor %s: %w", p.Name, err)
		}
		buf.WriteByte('\n')
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode actors: %w", err)
	}
	return writeFile(path, buf.Bytes())
}

// ParseActorReport reads a report written by WriteActorReport (or edited by
// hand) back into a deduplicated person list. When the same name appears
// twice, the first entry wins but a later entry may contribute a missing
// TMDb id.
func ParseActorReport(path string) ([]extract.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actor report: %w", err)
	}

	// The file is a bare sequence of <actor> elements; wrap them so the
	// decoder sees a single document.
	var wrapper struct {
		Actors []actorBlock `xml:"actor"`
	}
	wrapped := append(append([]byte("<actors>"), data...), []byte("</actors>")...)
	if err := xml.Unmarshal(wrapped, &wrapper); err != nil {
		return nil, fmt.Errorf("parse actor report %s: %w", path, err)
	}

	var people []extract.Person
	index := make(map[string]int)
	for _, a := range wrapper.Actors {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		if i, ok := index[name]; ok {
			if people[i].TMDBID == "" && strings.TrimSpace(a.TMDBID) != "" {
				people[i].TMDBID = strings.TrimSpace(a.TMDBID)
			}
			continue
		}
		index[name] = len(people)
		people = append(people, extract.Person{
			Name:   name,
			Role:   strings.TrimSpace(a.Role),
			TMDBID: strings.TrimSpace(a.TMDBID),
		})
	}
	return people, nil
}

// WriteStudioReport writes the missing-studio report as a Markdown bullet
// list.
func WriteStudioReport(path string, studios []string) error {
	var buf bytes.Buffer
	buf.WriteString("# Missing studio assets\n\n")
	if len(studios) == 0 {
		buf.WriteString("None.\n")
		return writeFile(path, buf.Bytes())
	}
	for _, s := range studios {
		fmt.Fprintf(&buf, "- %s\n", s)
	}
	return writeFile(path, buf.Bytes())
}

// ParseStudioReport reads the bullet lines of a studio report, deduplicated
// and sorted.
func ParseStudioReport(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read studio report: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var studios []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		name := strings.TrimSpace(line[2:])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		studios = append(studios, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan studio report: %w", err)
	}
	sort.Strings(studios)
	return studios, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
