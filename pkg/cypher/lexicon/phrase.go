package lexicon

import "strings"

// PhraseSet recognizes multi-word phrases in a token stream using greedy
// longest-match. Single-word entries are matched token by token.
type PhraseSet struct {
	phrases map[string]struct{}
	maxLen  int
}

// NewPhraseSet builds a set from lowercase phrase strings.
func NewPhraseSet(phrases []string) *PhraseSet {
	set := make(map[string]struct{}, len(phrases))
	maxLen := 1
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		set[p] = struct{}{}
		if n := len(strings.Fields(p)); n > maxLen {
			maxLen = n
		}
	}
	return &PhraseSet{phrases: set, maxLen: maxLen}
}

// CountIn counts phrase occurrences in the token stream. Matches do not
// overlap; the longest phrase starting at each position wins.
func (p *PhraseSet) CountIn(words []string) int {
	count := 0
	i := 0
	for i < len(words) {
		matched := 0
		max := p.maxLen
		if remaining := len(words) - i; max > remaining {
			max = remaining
		}
		for n := max; n >= 1; n-- {
			phrase := strings.Join(words[i:i+n], " ")
			if _, ok := p.phrases[phrase]; ok {
				matched = n
				break
			}
		}
		if matched > 0 {
			count++
			i += matched
		} else {
			i++
		}
	}
	return count
}

// Size returns the number of phrases in the set.
func (p *PhraseSet) Size() int {
	return len(p.phrases)
}
