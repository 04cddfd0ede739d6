package scheme

import (
	"fmt"
	"sort"
	"strings"
)

var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
}

var superscriptLetters = map[rune]rune{
	'A': 'ᵃ', 'B': 'ᵇ', 'C': 'ᶜ', 'D': 'ᵈ', 'E': 'ᵉ', 'F': 'ᶠ',
	'G': 'ᵍ', 'H': 'ʰ', 'I': 'ⁱ', 'J': 'ʲ', 'K': 'ᵏ', 'L': 'ˡ',
	'M': 'ᵐ', 'N': 'ⁿ', 'O': 'ᵒ', 'P': 'ᵖ', 'Q': '𐞥', 'R': 'ʳ',
	'S': 'ˢ', 'T': 'ᵗ', 'U': 'ᵘ', 'V': 'ᵛ', 'W': 'ʷ', 'X': 'ˣ',
	'Y': 'ʸ', 'Z': 'ᶻ',
}

// SuperscriptNumber renders a count in Unicode superscript digits.
func SuperscriptNumber(n int) string {
	var b strings.Builder
	for _, r := range fmt.Sprintf("%d", n) {
		if sup, ok := superscriptDigits[r]; ok {
			b.WriteRune(sup)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SuperscriptLabel renders a family label in Unicode superscript letters.
func SuperscriptLabel(label string) string {
	var b strings.Builder
	for _, r := range label {
		if sup, ok := superscriptLetters[r]; ok {
			b.WriteRune(sup)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Annotate renders the line's scheme string ("<syllableCount>–" followed by
// each in-line family, sorted by label, with its count in superscript digits)
// and the syllable breakdown string (each syllable's text followed by its
// family labels as superscript letters). Presentation only; deterministic.
func Annotate(l *Line) {
	var scheme strings.Builder
	fmt.Fprintf(&scheme, "%d–", l.SyllableCount)

	labels := make([]string, 0, len(l.InternalCounts))
	for label, n := range l.InternalCounts {
		if n > 0 {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	for _, label := range labels {
		scheme.WriteString(label)
		scheme.WriteString(SuperscriptNumber(l.InternalCounts[label]))
	}
	l.Scheme = scheme.String()

	parts := make([]string, 0, len(l.Syllables))
	for _, syl := range l.Syllables {
		part := syl.Text
		for _, label := range syl.Families {
			part += SuperscriptLabel(label)
		}
		parts = append(parts, part)
	}
	l.Breakdown = strings.Join(parts, " ")
}
