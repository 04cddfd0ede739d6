package scheme

import (
	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/syllable"
)

// Clusterer assigns syllables to a growing family set over one analysis call.
// It holds per-call state only; a fresh Clusterer is created for every
// top-level analysis.
type Clusterer struct {
	families []*Family
}

// NewClusterer creates an empty clusterer.
func NewClusterer() *Clusterer {
	return &Clusterer{}
}

// Families returns the families in creation order.
func (c *Clusterer) Families() []*Family {
	return c.families
}

// AssignEnd clusters the line's last syllable: the first existing family (in
// creation order) whose pattern matches wins; otherwise a new family is
// allocated with the next ascending label. The returned kind is MatchNone
// when a new family was created.
func (c *Clusterer) AssignEnd(syls []syllable.Syllable, lineIdx int) (string, phonetics.MatchKind) {
	if len(syls) == 0 {
		return "", phonetics.MatchNone
	}
	last := &syls[len(syls)-1]
	pattern := last.RhymePattern

	for _, f := range c.families {
		if kind := phonetics.Match(pattern, f.Pattern); kind != phonetics.MatchNone {
			f.Count++
			f.Lines = append(f.Lines, lineIdx)
			addFamily(last, f.Label)
			return f.Label, kind
		}
	}

	f := &Family{
		Label:   LabelFor(len(c.families)),
		Pattern: append([]string(nil), pattern...),
		Count:   1,
		Lines:   []int{lineIdx},
	}
	c.families = append(c.families, f)
	addFamily(last, f.Label)
	return f.Label, phonetics.MatchNone
}

// ScanInternal matches every syllable of the line against the full current
// family set and returns per-family occurrence counts. Run after AssignEnd,
// so a line's own end rhyme also counts as an internal occurrence; lines
// whose end rhyme is echoed earlier in the line are rewarded. (Candidate fix:
// see DESIGN.md; the inflation is bounded by the internal score cap.)
func (c *Clusterer) ScanInternal(syls []syllable.Syllable) map[string]int {
	counts := make(map[string]int)
	for i := range syls {
		syl := &syls[i]
		for _, f := range c.families {
			if phonetics.Match(syl.RhymePattern, f.Pattern) != phonetics.MatchNone {
				counts[f.Label]++
				addFamily(syl, f.Label)
				break
			}
		}
	}
	return counts
}

func addFamily(s *syllable.Syllable, label string) {
	for _, l := range s.Families {
		if l == label {
			return
		}
	}
	s.Families = append(s.Families, label)
}

// Tally fills the result's aggregate rhyme counts from its lines: adjacent
// end-rhyme matches with perfect/slant classification, the internal
// occurrence total, and multi-syllable pairs (both line-ending words must
// have more than one syllable).
func Tally(res *Result) {
	if len(res.Lines) > 1 {
		res.AdjacentPairs = len(res.Lines) - 1
	}
	for i := range res.Lines {
		line := &res.Lines[i]
		for _, n := range line.InternalCounts {
			res.InternalCount += n
		}
		if i == 0 {
			continue
		}
		prev := &res.Lines[i-1]
		if line.EndFamily == "" || line.EndFamily != prev.EndFamily {
			continue
		}
		res.EndMatches++
		switch phonetics.Match(line.EndPattern, prev.EndPattern) {
		case phonetics.MatchPerfect:
			res.PerfectCount++
		default:
			res.SlantCount++
		}
		if line.LastWordSyllables > 1 && prev.LastWordSyllables > 1 {
			res.MultiPairs++
		}
	}
}
