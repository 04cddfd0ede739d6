package phonetics

import "strings"

// Phonemes follow the ARPAbet convention used by the CMU pronouncing
// dictionary: vowels carry a trailing stress digit (0 unstressed, 1 primary,
// 2 secondary), e.g. "AY1", consonants carry none, e.g. "F".

// vowelBases are the ARPAbet vowel phonemes (stress digit stripped).
var vowelBases = map[string]struct{}{
	"AA": {}, "AE": {}, "AH": {}, "AO": {}, "AW": {}, "AY": {},
	"EH": {}, "ER": {}, "EY": {}, "IH": {}, "IY": {}, "OW": {},
	"OY": {}, "UH": {}, "UW": {},
}

// voicingPairs maps each consonant to its voiced/unvoiced partner.
// Pairs: P/B, T/D, K/G, F/V, TH/DH, S/Z, SH/ZH, CH/JH.
var voicingPairs = map[string]string{
	"P": "B", "B": "P",
	"T": "D", "D": "T",
	"K": "G", "G": "K",
	"F": "V", "V": "F",
	"TH": "DH", "DH": "TH",
	"S": "Z", "Z": "S",
	"SH": "ZH", "ZH": "SH",
	"CH": "JH", "JH": "CH",
}

// Stress returns the stress digit of a phoneme, and whether one is present.
func Stress(p string) (int, bool) {
	if p == "" {
		return 0, false
	}
	switch p[len(p)-1] {
	case '0':
		return 0, true
	case '1':
		return 1, true
	case '2':
		return 2, true
	}
	return 0, false
}

// Strip removes a trailing stress digit, if any.
func Strip(p string) string {
	if _, ok := Stress(p); ok {
		return p[:len(p)-1]
	}
	return p
}

// IsVowel reports whether the phoneme (with or without stress digit) is a vowel.
func IsVowel(p string) bool {
	_, ok := vowelBases[Strip(p)]
	return ok
}

// RhymePattern extracts the rhyme pattern of a syllable's phoneme list: the
// last phoneme carrying a primary or secondary stress marker plus everything
// after it. If no such phoneme exists, the last two phonemes are used (or all
// of them if fewer than two). The result is never empty for non-empty input.
func RhymePattern(phonemes []string) []string {
	if len(phonemes) == 0 {
		return nil
	}
	for i := len(phonemes) - 1; i >= 0; i-- {
		if s, ok := Stress(phonemes[i]); ok && s > 0 {
			return phonemes[i:]
		}
	}
	if len(phonemes) >= 2 {
		return phonemes[len(phonemes)-2:]
	}
	return phonemes
}

// MatchKind classifies how two rhyme patterns relate.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchSlant
	MatchPerfect
)

func (k MatchKind) String() string {
	switch k {
	case MatchPerfect:
		return "perfect"
	case MatchSlant:
		return "slant"
	}
	return "none"
}

// IsPerfectPattern reports whether a pattern qualifies for the perfect-rhyme
// classification: length >= 2 with at least one primary/secondary stress
// marker. Exact matches on weaker patterns still count as slant rhymes.
func IsPerfectPattern(p []string) bool {
	if len(p) < 2 {
		return false
	}
	for _, ph := range p {
		if s, ok := Stress(ph); ok && s > 0 {
			return true
		}
	}
	return false
}

// Match decides whether two rhyme patterns rhyme and how.
//
// Exact sequence equality is a match (perfect when the pattern qualifies,
// slant otherwise). Failing that, both patterns must share a vowel core (the
// first stress-marked phoneme, digit stripped); the consonant similarity over
// the voicing-pair table must then reach 0.7. Similarity is evaluated in both
// directions and the larger value used, keeping Match symmetric.
func Match(a, b []string) MatchKind {
	if len(a) == 0 || len(b) == 0 {
		return MatchNone
	}
	if patternsEqual(a, b) {
		if IsPerfectPattern(a) {
			return MatchPerfect
		}
		return MatchSlant
	}

	coreA := vowelCore(a)
	coreB := vowelCore(b)
	if coreA == "" || coreA != coreB {
		return MatchNone
	}

	sim := consonantSimilarity(a, b)
	if s := consonantSimilarity(b, a); s > sim {
		sim = s
	}
	if sim >= 0.7 {
		return MatchSlant
	}
	return MatchNone
}

func patternsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// vowelCore returns the first stress-marked phoneme with its digit stripped,
// or "" when the pattern has none.
func vowelCore(p []string) string {
	for _, ph := range p {
		if _, ok := Stress(ph); ok {
			return Strip(ph)
		}
	}
	return ""
}

// consonantSimilarity is the fraction of a's non-vowel phonemes that have an
// equal or voicing-paired counterpart in b. A pattern with no consonants is
// vacuously similar.
func consonantSimilarity(a, b []string) float64 {
	var total, matched int
	for _, pa := range a {
		if IsVowel(pa) {
			continue
		}
		total++
		ca := Strip(pa)
		for _, pb := range b {
			if IsVowel(pb) {
				continue
			}
			cb := Strip(pb)
			if ca == cb || voicingPairs[ca] == cb {
				matched++
				break
			}
		}
	}
	if total == 0 {
		return 1.0
	}
	return float64(matched) / float64(total)
}

// PatternKey renders a pattern as a stable string, useful for map keys and
// debug output.
func PatternKey(p []string) string {
	return strings.Join(p, " ")
}
