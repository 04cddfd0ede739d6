package scoring

import (
	"strings"
	"testing"

	"github.com/versebattle/cypher/pkg/cypher/lexicon"
	"github.com/versebattle/cypher/pkg/cypher/scheme"
)

func lineOf(text string, syllables int) scheme.Line {
	words := strings.Fields(text)
	return scheme.Line{
		Words:         words,
		WordCount:     len(words),
		SyllableCount: syllables,
	}
}

func testScorer() *Scorer {
	return NewScorer(DefaultWeights(), lexicon.Default())
}

func TestRhymeScoreFullEndRhymes(t *testing.T) {
	res := &scheme.Result{AdjacentPairs: 3, EndMatches: 3}
	if got := RhymeScore(res); got != 50 {
		t.Errorf("RhymeScore = %f; want 50 for all pairs matched", got)
	}
}

func TestRhymeScoreMonotonicInEndMatches(t *testing.T) {
	prev := -1.0
	for matches := 0; matches <= 5; matches++ {
		res := &scheme.Result{AdjacentPairs: 5, EndMatches: matches}
		got := RhymeScore(res)
		if got < prev {
			t.Errorf("RhymeScore decreased at %d matches: %f < %f", matches, got, prev)
		}
		prev = got
	}
}

func TestRhymeScoreCaps(t *testing.T) {
	res := &scheme.Result{
		AdjacentPairs: 1,
		EndMatches:    1,
		InternalCount: 100,
		MultiPairs:    100,
	}
	if got := RhymeScore(res); got != 50+30+20 {
		t.Errorf("RhymeScore = %f; want 100 at all caps", got)
	}
}

func TestRhymeScoreSingleLine(t *testing.T) {
	res := &scheme.Result{Lines: []scheme.Line{lineOf("one line only", 4)}}
	if got := RhymeScore(res); got != 0 {
		t.Errorf("RhymeScore = %f; want 0 without adjacent pairs", got)
	}
}

func TestFlowScoreIdealLine(t *testing.T) {
	res := &scheme.Result{Lines: []scheme.Line{lineOf("one two three four five six", 12)}}
	if got := FlowScore(res); got != 100 {
		t.Errorf("FlowScore = %f; want 100 for ideal counts", got)
	}
}

func TestFlowScorePenalty(t *testing.T) {
	// 2 words (2 under the window: 80) and 4 syllables (4 under: 60) -> 70.
	res := &scheme.Result{Lines: []scheme.Line{lineOf("two words", 4)}}
	if got := FlowScore(res); got != 70 {
		t.Errorf("FlowScore = %f; want 70", got)
	}
}

func TestFlowScoreEmpty(t *testing.T) {
	if got := FlowScore(&scheme.Result{}); got != 0 {
		t.Errorf("FlowScore = %f; want 0 for empty verse", got)
	}
}

func TestFlowScoreFloor(t *testing.T) {
	res := &scheme.Result{Lines: []scheme.Line{lineOf(strings.Repeat("word ", 40), 60)}}
	got := FlowScore(res)
	if got < 0 {
		t.Errorf("FlowScore = %f; must not go below 0", got)
	}
}

func TestCreativityFloorShortVerse(t *testing.T) {
	s := testScorer()
	res := &scheme.Result{Lines: []scheme.Line{
		lineOf("sup", 1),
		lineOf("yo yo", 2),
	}}
	if got := s.creativityScore(res); got > 5 {
		t.Errorf("creativity = %f; want <= 5 for 3 words", got)
	}
}

func TestCreativityFloorSingleLine(t *testing.T) {
	s := testScorer()
	res := &scheme.Result{Lines: []scheme.Line{
		lineOf("plenty of words but only one line here", 9),
	}}
	if got := s.creativityScore(res); got > 5 {
		t.Errorf("creativity = %f; want <= 5 for single line", got)
	}
}

func TestCreativityClichePenalty(t *testing.T) {
	s := testScorer()
	base := &scheme.Result{Lines: []scheme.Line{
		lineOf("crafted verses with intricate vision tonight", 12),
		lineOf("painting pictures nobody imagined before", 12),
	}}
	cliched := &scheme.Result{Lines: []scheme.Line{
		lineOf("crafted verses with intricate vision tonight", 12),
		lineOf("drop the mic because haters gonna hate", 12),
	}}
	if s.creativityScore(cliched) >= s.creativityScore(base) {
		t.Error("cliché phrases should lower the creativity score")
	}
}

func TestCreativitySimileCue(t *testing.T) {
	s := testScorer()
	plain := &scheme.Result{Lines: []scheme.Line{
		lineOf("my style is very heavy and bold", 10),
		lineOf("verses keep coming without pause", 10),
	}}
	simile := &scheme.Result{Lines: []scheme.Line{
		lineOf("my style is cold like a glacier", 10),
		lineOf("verses keep coming without pause", 10),
	}}
	if s.creativityScore(simile) <= s.creativityScore(plain) {
		t.Error("simile cues should raise the creativity score")
	}
}

func TestRhythmConsistencyEvenLines(t *testing.T) {
	even := &scheme.Result{Lines: []scheme.Line{
		lineOf("a b c d", 10), lineOf("e f g h", 10), lineOf("i j k l", 10),
	}}
	uneven := &scheme.Result{Lines: []scheme.Line{
		lineOf("a b c d", 2), lineOf("e f g h", 20), lineOf("i j k l", 5),
	}}
	if RhythmConsistency(even) <= RhythmConsistency(uneven) {
		t.Error("even syllable counts should score higher rhythm consistency")
	}
	if got := RhythmConsistency(even); got != 100 {
		t.Errorf("RhythmConsistency = %f; want 100 for zero variance in band", got)
	}
}

func TestScoreWeightedTotal(t *testing.T) {
	s := testScorer()
	res := &scheme.Result{
		Lines: []scheme.Line{
			lineOf("one two three four five six", 12),
			lineOf("six five four three two one", 12),
		},
		AdjacentPairs: 1,
		EndMatches:    1,
	}
	b := s.Score(res)
	want := b.Rhyme*0.40 + b.Flow*0.35 + b.Creativity*0.25
	if float64(b.Total) < want-0.51 || float64(b.Total) > want+0.51 {
		t.Errorf("Total = %d; want round(%f)", b.Total, want)
	}
	if b.Total < 0 || b.Total > 100 {
		t.Errorf("Total = %d out of range", b.Total)
	}
}
