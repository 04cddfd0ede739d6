// Package lexicon holds the curated word tables the creativity detectors and
// the lyric enhancer run on: cliché phrases, homonym groups, double-entendre
// phrases, simile cues, aggressive battle vocabulary, and synonym groups for
// substitution. Tables are plain data; behavior lives in the detectors.
package lexicon

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is the assembled table set. Zero value is unusable; start from
// Default or LoadFromYAML.
type Lexicon struct {
	cliches         *PhraseSet
	doubleEntendres *PhraseSet
	simileCues      *PhraseSet
	homonyms        [][]string
	homonymIndex    map[string]int
	aggressive      map[string]struct{}

	// canonical -> all variants (including canonical itself), plus the
	// reverse index, for enhancement substitutions.
	synonyms     map[string][]string
	reverseIndex map[string]string
}

// Default returns the built-in battle-rap lexicon.
func Default() *Lexicon {
	l := &Lexicon{
		cliches:         NewPhraseSet(defaultCliches),
		doubleEntendres: NewPhraseSet(defaultDoubleEntendres),
		simileCues:      NewPhraseSet(defaultSimileCues),
		homonymIndex:    make(map[string]int),
		aggressive:      make(map[string]struct{}),
		synonyms:        make(map[string][]string),
		reverseIndex:    make(map[string]string),
	}
	for _, group := range defaultHomonyms {
		l.addHomonymGroup(group)
	}
	for _, w := range defaultAggressive {
		l.aggressive[w] = struct{}{}
	}
	for canonical, variants := range defaultSynonyms {
		l.AddSynonymGroup(canonical, variants)
	}
	return l
}

// tables is the YAML override format:
//
//	cliches: [drop the mic, ...]
//	double_entendres: [bars behind bars, ...]
//	simile_cues: [like a, ...]
//	homonyms: [[steel, steal], ...]
//	aggressive: [destroy, ...]
//	synonyms:
//	  - canonical: mad
//	    variants: [angry, irate, heated]
type tables struct {
	Cliches         []string   `yaml:"cliches"`
	DoubleEntendres []string   `yaml:"double_entendres"`
	SimileCues      []string   `yaml:"simile_cues"`
	Homonyms        [][]string `yaml:"homonyms"`
	Aggressive      []string   `yaml:"aggressive"`
	Synonyms        []struct {
		Canonical string   `yaml:"canonical"`
		Variants  []string `yaml:"variants"`
	} `yaml:"synonyms"`
}

// LoadFromYAML loads a lexicon from a YAML file. Absent sections keep the
// built-in tables, so a file can override just one list.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	l := Default()
	if len(t.Cliches) > 0 {
		l.cliches = NewPhraseSet(t.Cliches)
	}
	if len(t.DoubleEntendres) > 0 {
		l.doubleEntendres = NewPhraseSet(t.DoubleEntendres)
	}
	if len(t.SimileCues) > 0 {
		l.simileCues = NewPhraseSet(t.SimileCues)
	}
	if len(t.Homonyms) > 0 {
		l.homonyms = nil
		l.homonymIndex = make(map[string]int)
		for _, group := range t.Homonyms {
			l.addHomonymGroup(group)
		}
	}
	if len(t.Aggressive) > 0 {
		l.aggressive = make(map[string]struct{}, len(t.Aggressive))
		for _, w := range t.Aggressive {
			l.aggressive[strings.ToLower(w)] = struct{}{}
		}
	}
	for _, group := range t.Synonyms {
		l.AddSynonymGroup(group.Canonical, group.Variants)
	}
	return l, nil
}

// CountCliches counts cliché phrases in the tokenized verse.
func (l *Lexicon) CountCliches(words []string) int {
	return l.cliches.CountIn(words)
}

// CountDoubleEntendres counts curated double-entendre phrase patterns.
func (l *Lexicon) CountDoubleEntendres(words []string) int {
	return l.doubleEntendres.CountIn(words)
}

// CountSimileCues counts simile/metaphor cue phrases.
func (l *Lexicon) CountSimileCues(words []string) int {
	return l.simileCues.CountIn(words)
}

// IsAggressive reports whether the word belongs to the aggressive/superiority
// vocabulary.
func (l *Lexicon) IsAggressive(word string) bool {
	_, ok := l.aggressive[strings.ToLower(word)]
	return ok
}

// HomonymPairs counts homonym groups with at least two distinct members
// present in the word set.
func (l *Lexicon) HomonymPairs(words []string) int {
	present := make(map[int]map[string]struct{})
	for _, w := range words {
		w = strings.ToLower(w)
		idx, ok := l.homonymIndex[w]
		if !ok {
			continue
		}
		if present[idx] == nil {
			present[idx] = make(map[string]struct{})
		}
		present[idx][w] = struct{}{}
	}
	pairs := 0
	for _, members := range present {
		if len(members) >= 2 {
			pairs++
		}
	}
	return pairs
}

// AddSynonymGroup registers a canonical word and its variants, replacing any
// previous group under the same canonical.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)
	if old, exists := l.synonyms[canonical]; exists {
		for _, v := range old {
			delete(l.reverseIndex, v)
		}
	}

	normalized := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	l.synonyms[canonical] = normalized
	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Variants returns all known variants of a word (including the canonical
// form), or just the word itself when it has no group.
func (l *Lexicon) Variants(word string) []string {
	word = strings.ToLower(word)
	if canonical, ok := l.reverseIndex[word]; ok {
		return l.synonyms[canonical]
	}
	return []string{word}
}

// HasSynonyms reports whether the word belongs to any synonym group.
func (l *Lexicon) HasSynonyms(word string) bool {
	_, ok := l.reverseIndex[strings.ToLower(word)]
	return ok
}

func (l *Lexicon) addHomonymGroup(group []string) {
	if len(group) < 2 {
		return
	}
	idx := len(l.homonyms)
	normalized := make([]string, 0, len(group))
	for _, w := range group {
		w = strings.ToLower(w)
		normalized = append(normalized, w)
		l.homonymIndex[w] = idx
	}
	l.homonyms = append(l.homonyms, normalized)
}
