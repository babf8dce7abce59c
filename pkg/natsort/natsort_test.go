package natsort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"plain text", "apple", "banana", -1},
		{"equal", "episode1.nfo", "episode1.nfo", 0},
		{"numeric beats lexical", "ep2", "ep10", -1},
		{"large numbers", "file100", "file99", 1},
		{"case insensitive", "Episode2", "episode10", -1},
		{"digit run before text run", "1x01", "special", -1},
		{"prefix", "ep1", "ep1b", -1},
		{"multiple runs", "s1e2", "s1e10", -1},
		{"leading zeros equal value", "ep02", "ep2", 1},
		{"leading zeros smaller value", "ep02", "ep10", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b), "Compare(%q, %q)", tt.a, tt.b)
			assert.Equal(t, -tt.want, Compare(tt.b, tt.a), "Compare(%q, %q)", tt.b, tt.a)
		})
	}
}

func TestSort(t *testing.T) {
	files := []string{"ep10.nfo", "ep2.nfo", "ep1.nfo"}
	Sort(files)
	assert.Equal(t, []string{"ep1.nfo", "ep2.nfo", "ep10.nfo"}, files)
}

func TestSortMixed(t *testing.T) {
	files := []string{"Day10.nfo", "day2.nfo", "Day1.nfo", "extra.nfo"}
	Sort(files)
	assert.Equal(t, []string{"Day1.nfo", "day2.nfo", "Day10.nfo", "extra.nfo"}, files)
}
