package assets

import (
	"sort"
	"strings"

	"github.com/git-hub-cc/MediaHub/internal/extract"
)

// IDQualifier joins an entity name and its TMDb id in catalog keys, e.g.
// "Jane Doe-tmdb-501".
const IDQualifier = "-tmdb-"

// Key returns the catalog key for a name with an optional TMDb id.
func Key(name, tmdbID string) string {
	if tmdbID == "" {
		return name
	}
	return name + IDQualifier + tmdbID
}

// Resolver answers coverage queries against one catalog. Construction
// pre-indexes every id-qualified key by its name prefix so per-entity
// lookups stay O(1); results are identical to a linear prefix scan.
type Resolver struct {
	catalog  Catalog
	prefixed map[string]bool
}

// NewResolver builds a resolver over catalog.
func NewResolver(catalog Catalog) *Resolver {
	r := &Resolver{catalog: catalog, prefixed: make(map[string]bool)}
	for key := range catalog {
		rest := key
		offset := 0
		for {
			i := strings.Index(rest, IDQualifier)
			if i < 0 {
				break
			}
			r.prefixed[key[:offset+i]] = true
			offset += i + len(IDQualifier)
			rest = key[offset:]
		}
	}
	return r
}

// Covered reports whether the catalog holds an asset for name, either under
// the bare name or under any id-qualified key for it.
func (r *Resolver) Covered(name string) bool {
	if _, ok := r.catalog[name]; ok {
		return true
	}
	return r.prefixed[name]
}

// MissingPeople returns the referenced cast members without a usable local
// asset. A person is covered by a non-blank direct thumb reference, an
// exact catalog key, or an id-qualified catalog key, checked in that order.
// The result is deduplicated by name (first occurrence wins) and sorted by
// name ascending.
func (r *Resolver) MissingPeople(people []extract.Person) []extract.Person {
	var missing []extract.Person
	seen := make(map[string]bool)
	for _, p := range people {
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		if strings.TrimSpace(p.Thumb) != "" {
			continue
		}
		if r.Covered(p.Name) {
			continue
		}
		missing = append(missing, p)
	}
	sort.SliceStable(missing, func(i, j int) bool { return missing[i].Name < missing[j].Name })
	return missing
}

// MissingStudios returns the referenced studios without a local logo.
// Studios have no direct reference field, so only the exact and
// id-qualified checks apply. The result is deduplicated and sorted.
func (r *Resolver) MissingStudios(studios []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, name := range studios {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if r.Covered(name) {
			continue
		}
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}
