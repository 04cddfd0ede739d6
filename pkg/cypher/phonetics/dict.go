package phonetics

import (
	"bufio"
	"os"
	"strings"
)

// Dictionary maps lowercase words to one or more phoneme-sequence
// pronunciations, kept in insertion order. Only the first pronunciation is
// used for syllabification; the rest are retained for future matching work.
type Dictionary struct {
	entries map[string][][]string
	order   int
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: make(map[string][][]string)}
}

// Builtin returns a small curated dictionary covering frequent battle-rap
// vocabulary. It is the fallback when no full pronunciation resource is
// available.
func Builtin() *Dictionary {
	d := NewDictionary()
	for _, e := range builtinEntries {
		d.Add(e.word, strings.Fields(e.phonemes))
	}
	return d
}

// LoadFile reads a CMU-format pronunciation dictionary: one entry per line,
// word and phoneme sequence separated by whitespace, ";"-prefixed comment
// lines skipped, parenthesized variant suffixes like "(1)" stripped from the
// key. Callers should fall back to Builtin on error.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := NewDictionary()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		word := strings.ToLower(fields[0])
		if i := strings.IndexByte(word, '('); i > 0 {
			word = word[:i]
		}
		d.Add(word, fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Add appends a pronunciation for a word. Words are stored lowercase.
func (d *Dictionary) Add(word string, phonemes []string) {
	if word == "" || len(phonemes) == 0 {
		return
	}
	word = strings.ToLower(word)
	d.entries[word] = append(d.entries[word], phonemes)
}

// Lookup returns all pronunciations for a lowercase word, or nil when the
// word is unknown.
func (d *Dictionary) Lookup(word string) [][]string {
	return d.entries[strings.ToLower(word)]
}

// First returns the first pronunciation for a word, if any.
func (d *Dictionary) First(word string) ([]string, bool) {
	prons := d.Lookup(word)
	if len(prons) == 0 {
		return nil, false
	}
	return prons[0], true
}

// Size returns the number of distinct words.
func (d *Dictionary) Size() int {
	return len(d.entries)
}

// builtinEntries is the curated fallback table. Pronunciations follow the CMU
// dictionary.
var builtinEntries = []struct {
	word     string
	phonemes string
}{
	{"fire", "F AY1 ER0"},
	{"higher", "HH AY1 ER0"},
	{"desire", "D IH0 Z AY1 ER0"},
	{"wire", "W AY1 ER0"},
	{"barbed", "B AA1 R B D"},
	{"cat", "K AE1 T"},
	{"dog", "D AO1 G"},
	{"flow", "F L OW1"},
	{"go", "G OW1"},
	{"show", "SH OW1"},
	{"know", "N OW1"},
	{"mic", "M AY1 K"},
	{"rhyme", "R AY1 M"},
	{"time", "T AY1 M"},
	{"climb", "K L AY1 M"},
	{"spit", "S P IH1 T"},
	{"sick", "S IH1 K"},
	{"quick", "K W IH1 K"},
	{"heat", "HH IY1 T"},
	{"street", "S T R IY1 T"},
	{"beat", "B IY1 T"},
	{"game", "G EY1 M"},
	{"name", "N EY1 M"},
	{"fame", "F EY1 M"},
	{"flame", "F L EY1 M"},
	{"money", "M AH1 N IY0"},
	{"honey", "HH AH1 N IY0"},
	{"real", "R IY1 L"},
	{"feel", "F IY1 L"},
	{"steel", "S T IY1 L"},
	{"steal", "S T IY1 L"},
	{"skill", "S K IH1 L"},
	{"kill", "K IH1 L"},
	{"battle", "B AE1 T AH0 L"},
	{"rattle", "R AE1 T AH0 L"},
	{"back", "B AE1 K"},
	{"track", "T R AE1 K"},
	{"attack", "AH0 T AE1 K"},
	{"wack", "W AE1 K"},
	{"king", "K IH1 NG"},
	{"bring", "B R IH1 NG"},
	{"ring", "R IH1 NG"},
	{"night", "N AY1 T"},
	{"right", "R AY1 T"},
	{"write", "R AY1 T"},
	{"fight", "F AY1 T"},
	{"tight", "T AY1 T"},
	{"bars", "B AA1 R Z"},
	{"hard", "HH AA1 R D"},
	{"heart", "HH AA1 R T"},
}
