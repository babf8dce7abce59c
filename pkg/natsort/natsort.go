// Package natsort provides natural-order string comparison, where digit runs
// compare by numeric value instead of lexically ("ep2" sorts before "ep10").
package natsort

import (
	"sort"
	"strings"
)

// Less reports whether a sorts before b in natural order.
// Strings are split into alternating digit and non-digit runs; digit runs
// compare numerically, non-digit runs compare case-insensitively.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ra, da := nextRun(a, i)
		rb, db := nextRun(b, j)

		switch {
		case da && db:
			if c := compareNumeric(ra, rb); c != 0 {
				return c
			}
		case da != db:
			// A digit run sorts before a text run at the same position.
			if da {
				return -1
			}
			return 1
		default:
			if c := strings.Compare(strings.ToLower(ra), strings.ToLower(rb)); c != 0 {
				return c
			}
		}
		i += len(ra)
		j += len(rb)
	}
	switch {
	case i < len(a):
		return 1
	case j < len(b):
		return -1
	}
	return 0
}

// Sort sorts ss in place in natural order.
func Sort(ss []string) {
	sort.SliceStable(ss, func(i, j int) bool { return Less(ss[i], ss[j]) })
}

// nextRun returns the maximal all-digit or all-non-digit run starting at
// position i, and whether it is a digit run.
func nextRun(s string, i int) (string, bool) {
	digits := isDigit(s[i])
	j := i + 1
	for j < len(s) && isDigit(s[j]) == digits {
		j++
	}
	return s[i:j], digits
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// compareNumeric compares two all-digit strings by value. Leading zeros are
// insignificant; equal values fall back to length so ordering stays total.
func compareNumeric(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if len(ta) != len(tb) {
		if len(ta) < len(tb) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	// Same value; shorter original (fewer leading zeros) first.
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}
