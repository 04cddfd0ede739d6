// Package scoring derives the numeric battle score from an analyzed verse:
// rhyme density, flow quality, and creativity sub-scores combined with fixed
// weights.
package scoring

import (
	"math"

	"github.com/versebattle/cypher/pkg/cypher/lexicon"
	"github.com/versebattle/cypher/pkg/cypher/scheme"
)

// Weights defines the sub-score weights. They should sum to 1.
type Weights struct {
	Rhyme      float64
	Flow       float64
	Creativity float64
}

// DefaultWeights returns the production weighting: rhyme 40%, flow 35%,
// creativity 25%.
func DefaultWeights() Weights {
	return Weights{Rhyme: 0.40, Flow: 0.35, Creativity: 0.25}
}

// Breakdown carries each 0-100 sub-score and the rounded weighted total.
type Breakdown struct {
	Rhyme      float64
	Flow       float64
	Creativity float64
	Total      int
}

// Scorer computes verse scores against a lexicon.
type Scorer struct {
	weights Weights
	lex     *lexicon.Lexicon
}

// NewScorer creates a scorer with the given weights and lexicon.
func NewScorer(w Weights, lex *lexicon.Lexicon) *Scorer {
	return &Scorer{weights: w, lex: lex}
}

// Score computes all sub-scores and the weighted total for an analyzed verse.
func (s *Scorer) Score(res *scheme.Result) Breakdown {
	b := Breakdown{
		Rhyme:      RhymeScore(res),
		Flow:       FlowScore(res),
		Creativity: s.creativityScore(res),
	}
	total := b.Rhyme*s.weights.Rhyme + b.Flow*s.weights.Flow + b.Creativity*s.weights.Creativity
	b.Total = int(math.Round(total))
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
