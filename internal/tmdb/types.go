// Package tmdb provides a client for The Movie Database API, scoped to the
// lookups the artwork pipeline needs: person and company search plus image
// downloads.
package tmdb

// Person is one person search result or detail record.
type Person struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path"` // "/abc123.jpg", empty when TMDB has no image
}

// Company is one company (studio) search result.
type Company struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path"`
}

// HasImage reports whether the person has a profile image on TMDB.
func (p Person) HasImage() bool { return p.ProfilePath != "" }

// HasImage reports whether the company has a logo on TMDB.
func (c Company) HasImage() bool { return c.LogoPath != "" }
