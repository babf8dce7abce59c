package fetch

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// bestMatch returns the index of the candidate name most similar to query,
// or -1 for an empty candidate list. Jaro-Winkler similarity favors prefix
// matches, which suits personal and company names; earlier-ranked
// candidates win ties, so an exact API ranking is never made worse.
func bestMatch(query string, candidates []string) int {
	best := -1
	bestScore := float32(-1)
	normalized := normalizeName(query)
	for i, c := range candidates {
		score := edlib.JaroWinklerSimilarity(normalized, normalizeName(c))
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return best
}

// normalizeName lowercases, strips accents, and collapses whitespace for
// comparison purposes only; catalog keys always keep the raw name.
func normalizeName(name string) string {
	s := strings.ToLower(name)
	s = removeAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// illegalChars are characters not allowed in filenames on common
// filesystems.
var illegalChars = regexp.MustCompile(`[\\*?:"<>|]`)

// sanitizeName makes an entity name safe to use as a directory name.
// Path separators become spaces (studio names like "A / B" are common);
// other illegal characters are dropped.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", " ")
	name = illegalChars.ReplaceAllString(name, "")
	return strings.TrimSpace(strings.Join(strings.Fields(name), " "))
}
