package scoring

import "github.com/versebattle/cypher/pkg/cypher/scheme"

// Ideal per-line windows for flow scoring.
const (
	idealSyllablesLo = 8
	idealSyllablesHi = 16
	idealWordsLo     = 4
	idealWordsHi     = 8
)

// FlowScore scores each line's syllable and word counts against their ideal
// windows with a linear penalty of 10 points per unit of distance outside,
// then averages over all lines. An empty verse scores 0.
func FlowScore(res *scheme.Result) float64 {
	if len(res.Lines) == 0 {
		return 0
	}
	sum := 0.0
	for i := range res.Lines {
		line := &res.Lines[i]
		sylScore := windowScore(line.SyllableCount, idealSyllablesLo, idealSyllablesHi)
		wordScore := windowScore(line.WordCount, idealWordsLo, idealWordsHi)
		sum += (sylScore + wordScore) / 2
	}
	return sum / float64(len(res.Lines))
}

func windowScore(n, lo, hi int) float64 {
	distance := 0
	switch {
	case n < lo:
		distance = lo - n
	case n > hi:
		distance = n - hi
	}
	return clamp(100-float64(distance)*10, 0, 100)
}

// RhythmConsistency measures 0-100 how even the syllable counts are across
// lines, with a bonus when the mean sits in the ideal 8-16 band.
func RhythmConsistency(res *scheme.Result) float64 {
	if len(res.Lines) == 0 {
		return 0
	}
	mean := 0.0
	for i := range res.Lines {
		mean += float64(res.Lines[i].SyllableCount)
	}
	mean /= float64(len(res.Lines))

	variance := 0.0
	for i := range res.Lines {
		d := float64(res.Lines[i].SyllableCount) - mean
		variance += d * d
	}
	variance /= float64(len(res.Lines))

	score := 100 - variance*10
	if mean >= idealSyllablesLo && mean <= idealSyllablesHi {
		score += 10
	}
	return clamp(score, 0, 100)
}
