// Package scheme clusters syllables into rhyme families and renders the
// per-line scheme notation.
package scheme

import (
	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/syllable"
)

// Family is a cluster of rhyme patterns judged equivalent, identified by an
// ascending letter label. Labels are assigned in first-seen order within one
// analysis and never reused for a different pattern.
type Family struct {
	Label   string
	Pattern []string
	Count   int
	Lines   []int
}

// LabelFor returns the nth family label: A..Z, then AA, AB, ...
func LabelFor(n int) string {
	label := ""
	n++
	for n > 0 {
		n--
		label = string(rune('A'+n%26)) + label
		n /= 26
	}
	return label
}

// Line is the analysis of one non-empty input line.
type Line struct {
	Index             int
	Text              string
	Words             []string
	Syllables         []syllable.Syllable
	SyllableCount     int
	WordCount         int
	EndFamily         string
	EndPattern        []string
	EndMatch          phonetics.MatchKind
	InternalCounts    map[string]int
	Scheme            string
	Breakdown         string
	LastWordSyllables int
}

// Result is the unit returned to callers and the unit cached: all line
// analyses, the family set, per-line scheme strings, the aggregate rhyme
// density (the 0-100 rhyme sub-score), and rhyme totals for the verse.
type Result struct {
	Lines    []Line
	Families []*Family
	Scheme   []string

	RhymeDensity  float64
	PerfectCount  int
	SlantCount    int
	AdjacentPairs int
	EndMatches    int
	InternalCount int
	MultiPairs    int
}

// Empty returns the neutral result used for guard rejections and degraded
// failures: zero lines, zero families, zero counts.
func Empty() *Result {
	return &Result{}
}
