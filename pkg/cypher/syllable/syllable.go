// Package syllable splits verse lines into ordered phonetic syllables, using
// the pronunciation dictionary when a word is known and a vowel-group
// heuristic otherwise.
package syllable

import (
	"strings"

	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/verse"
)

// Syllable is one phonetic syllable: its phonemes, the approximate slice of
// source text it covers, its stress level, its rhyme pattern, and the rhyme
// family labels later assigned by the clusterer.
type Syllable struct {
	Phonemes     []string
	Text         string
	Stress       int
	RhymePattern []string
	Families     []string
}

// Syllabifier turns words and lines into syllables.
type Syllabifier struct {
	dict *phonetics.Dictionary
}

// New creates a syllabifier over the given dictionary.
func New(dict *phonetics.Dictionary) *Syllabifier {
	return &Syllabifier{dict: dict}
}

// SplitLine tokenizes a line and syllabifies every word. Empty or
// punctuation-only lines yield zero syllables.
func (s *Syllabifier) SplitLine(line string) []Syllable {
	var out []Syllable
	for _, word := range verse.Words(line) {
		out = append(out, s.SplitWord(word)...)
	}
	return out
}

// SplitWord syllabifies a single lowercase word.
func (s *Syllabifier) SplitWord(word string) []Syllable {
	if word == "" {
		return nil
	}
	if phonemes, ok := s.dict.First(word); ok {
		return fromPhonemes(word, phonemes)
	}
	return fromLetters(word)
}

// fromPhonemes walks the pronunciation left to right, closing a syllable at
// every stress-marked phoneme. Trailing phonemes without a stress marker are
// flushed as a final zero-stress syllable.
func fromPhonemes(word string, phonemes []string) []Syllable {
	count := 0
	trailing := false
	for i, p := range phonemes {
		if _, ok := phonetics.Stress(p); ok {
			count++
			trailing = false
		} else if i == len(phonemes)-1 {
			trailing = true
		}
	}
	if trailing {
		count++
	}
	if count == 0 {
		count = 1
	}

	slices := splitEvenly(word, count)
	var out []Syllable
	var buf []string
	for _, p := range phonemes {
		buf = append(buf, p)
		if stress, ok := phonetics.Stress(p); ok {
			out = append(out, newSyllable(buf, slices[len(out)], stress))
			buf = nil
		}
	}
	if len(buf) > 0 {
		out = append(out, newSyllable(buf, slices[len(out)], 0))
	}
	return out
}

// fromLetters is the heuristic for unknown words: maximal vowel-letter runs
// set the syllable count, the word splits into that many roughly equal
// slices, the final slice takes primary stress, and each slice's rhyme
// pattern is its uppercased last two letters.
func fromLetters(word string) []Syllable {
	count := vowelRuns(word)
	if count < 1 {
		count = 1
	}
	slices := splitEvenly(word, count)

	out := make([]Syllable, 0, count)
	for i, slice := range slices {
		stress := 0
		if i == count-1 {
			stress = 1
		}
		out = append(out, Syllable{
			Text:         slice,
			Stress:       stress,
			RhymePattern: []string{tailPattern(slice)},
		})
	}
	return out
}

func newSyllable(phonemes []string, text string, stress int) Syllable {
	cp := make([]string, len(phonemes))
	copy(cp, phonemes)
	return Syllable{
		Phonemes:     cp,
		Text:         text,
		Stress:       stress,
		RhymePattern: phonetics.RhymePattern(cp),
	}
}

// splitEvenly divides a word into n contiguous rune slices of near-equal
// length. n must be >= 1.
func splitEvenly(word string, n int) []string {
	runes := []rune(word)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lo := i * len(runes) / n
		hi := (i + 1) * len(runes) / n
		out = append(out, string(runes[lo:hi]))
	}
	return out
}

// vowelRuns counts maximal runs of vowel letters.
func vowelRuns(word string) int {
	runs := 0
	inRun := false
	for _, r := range word {
		if strings.ContainsRune("aeiouy", r) {
			if !inRun {
				runs++
				inRun = true
			}
		} else {
			inRun = false
		}
	}
	return runs
}

func tailPattern(slice string) string {
	runes := []rune(slice)
	if len(runes) > 2 {
		runes = runes[len(runes)-2:]
	}
	return strings.ToUpper(string(runes))
}
