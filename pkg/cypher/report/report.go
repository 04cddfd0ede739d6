// Package report bundles an analysis into the enhanced summary handed back to
// the battle orchestration layer: primary rhyme figures plus the secondary
// sound-texture metrics.
package report

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/scheme"
	"github.com/versebattle/cypher/pkg/cypher/scoring"
)

// phonemeInventory is the size of the ARPAbet phoneme set; it normalizes the
// phonetic-complexity metric.
const phonemeInventory = 39

// Summary is one round's enhanced analysis summary. All metric fields are
// 0-100 except RhymeDensity, which carries the rhyme sub-score as computed.
type Summary struct {
	ID       string
	BattleID string

	RhymeDensity  float64
	PerfectRhymes int
	SlantRhymes   int
	Complexity    float64

	Assonance          float64
	Consonance         float64
	MultiSyllabic      float64
	RhythmConsistency  float64
	PhoneticComplexity float64
}

// Builder constructs summaries with monotonic ulid identifiers.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a summary builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Build derives the summary for one analysis result. The complexity score
// comes from the battle's progression history and is passed through.
func (b *Builder) Build(battleID string, res *scheme.Result, complexity float64) Summary {
	return Summary{
		ID:                 ulid.MustNew(ulid.Now(), b.entropy).String(),
		BattleID:           battleID,
		RhymeDensity:       res.RhymeDensity,
		PerfectRhymes:      res.PerfectCount,
		SlantRhymes:        res.SlantCount,
		Complexity:         complexity,
		Assonance:          soundRepetition(res, true),
		Consonance:         soundRepetition(res, false),
		MultiSyllabic:      capAt(float64(res.MultiPairs)*20, 100),
		RhythmConsistency:  scoring.RhythmConsistency(res),
		PhoneticComplexity: phoneticComplexity(res),
	}
}

// soundRepetition measures, per line, the fraction of vowel (or consonant)
// phonemes whose base sound recurs within that line, averaged over lines and
// scaled to 0-100.
func soundRepetition(res *scheme.Result, vowels bool) float64 {
	if len(res.Lines) == 0 {
		return 0
	}
	sum := 0.0
	for i := range res.Lines {
		counts := make(map[string]int)
		total := 0
		for _, syl := range res.Lines[i].Syllables {
			for _, p := range syl.Phonemes {
				if phonetics.IsVowel(p) != vowels {
					continue
				}
				counts[phonetics.Strip(p)]++
				total++
			}
		}
		if total == 0 {
			continue
		}
		repeated := 0
		for _, n := range counts {
			if n > 1 {
				repeated += n
			}
		}
		sum += float64(repeated) / float64(total)
	}
	return 100 * sum / float64(len(res.Lines))
}

// phoneticComplexity scores how much of the phoneme inventory the verse
// exercises.
func phoneticComplexity(res *scheme.Result) float64 {
	distinct := make(map[string]struct{})
	for i := range res.Lines {
		for _, syl := range res.Lines[i].Syllables {
			for _, p := range syl.Phonemes {
				distinct[phonetics.Strip(p)] = struct{}{}
			}
		}
	}
	return capAt(float64(len(distinct))*100/phonemeInventory, 100)
}

func capAt(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}
