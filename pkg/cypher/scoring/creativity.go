package scoring

import (
	"math"

	"github.com/versebattle/cypher/pkg/cypher/scheme"
)

// Creativity detector caps. Components sum below 100; the final value is
// clamped after the cliché penalty.
const (
	diversityCap  = 25.0
	wordplayCap   = 15.0
	figurativeCap = 15.0
	punchlineCap  = 15.0
	homonymCap    = 10.0
	rhythmCap     = 15.0

	clichePenalty = 4.0
)

// creativityScore combines the creativity detectors. Verses with three or
// fewer words, or a single line, are hard-capped at a very low score to
// floor minimal-effort submissions.
func (s *Scorer) creativityScore(res *scheme.Result) float64 {
	var all []string
	for i := range res.Lines {
		all = append(all, res.Lines[i].Words...)
	}
	if len(all) <= 3 || len(res.Lines) <= 1 {
		return math.Min(5, float64(len(all)))
	}

	score := diversityScore(all) +
		s.wordplayScore(all) +
		s.figurativeScore(all) +
		s.punchlineScore(res) +
		s.homonymScore(all) +
		RhythmConsistency(res)*rhythmCap/100

	score -= float64(s.lex.CountCliches(all)) * clichePenalty

	return clamp(score, 0, 100)
}

// diversityScore rewards lexical diversity: the unique-word ratio with a
// capped contribution.
func diversityScore(words []string) float64 {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(words))
	return clamp(ratio*diversityCap, 0, diversityCap)
}

// wordplayScore detects adjacent similar-sounding word pairs plus curated
// double-entendre phrase patterns.
func (s *Scorer) wordplayScore(words []string) float64 {
	pairs := 0
	for i := 0; i+1 < len(words); i++ {
		a, b := words[i], words[i+1]
		if len(a) < 3 || len(b) < 3 || a == b {
			continue
		}
		if a[len(a)-2:] == b[len(b)-2:] {
			pairs++
		}
	}
	entendres := s.lex.CountDoubleEntendres(words)
	return clamp(float64(pairs)*3+float64(entendres)*5, 0, wordplayCap)
}

func (s *Scorer) figurativeScore(words []string) float64 {
	cues := s.lex.CountSimileCues(words)
	return clamp(float64(cues)*5, 0, figurativeCap)
}

// punchlineScore counts aggressive/superiority vocabulary, weighting the
// final line double.
func (s *Scorer) punchlineScore(res *scheme.Result) float64 {
	weighted := 0
	for i := range res.Lines {
		weight := 1
		if i == len(res.Lines)-1 {
			weight = 2
		}
		for _, w := range res.Lines[i].Words {
			if s.lex.IsAggressive(w) {
				weighted += weight
			}
		}
	}
	return clamp(float64(weighted)*3, 0, punchlineCap)
}

func (s *Scorer) homonymScore(words []string) float64 {
	pairs := s.lex.HomonymPairs(words)
	return clamp(float64(pairs)*5, 0, homonymCap)
}
