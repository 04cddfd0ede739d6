// Package enhance injects internal rhymes into lyrics under a cooperative
// wall-clock budget: words are swapped for slang synonyms that rhyme with the
// line ending, without ever touching protected end words.
package enhance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/versebattle/cypher/pkg/cypher/internalerr"
	"github.com/versebattle/cypher/pkg/cypher/lexicon"
	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/syllable"
)

// DefaultBudget is the total wall-clock budget for one enhancement call,
// divided dynamically across remaining lines.
const DefaultBudget = 120 * time.Millisecond

// Enhancement modes.
const (
	ModeBalanced   = "balanced"
	ModeAggressive = "aggressive"
	ModeSubtle     = "subtle"
)

// Options configures an enhancement call.
type Options struct {
	// TargetDensity is the desired internal-rhyme density (0..1); lines
	// already at or above it are left alone.
	TargetDensity float64 `validate:"gte=0,lte=1"`
	// PreserveEndWords protects each line's final word from substitution.
	PreserveEndWords bool
	// MaxSyllableDeltaPerLine caps the syllable-count drift one line may
	// accumulate through substitutions.
	MaxSyllableDeltaPerLine int `validate:"gte=0"`
	// Mode controls which strategies are attempted and how many:
	// subtle (perfect rhymes only, 1 swap/line), balanced (2 swaps/line),
	// aggressive (3 swaps/line, may rewrite end words when unprotected).
	Mode string `validate:"required,oneof=balanced aggressive subtle"`
}

// DefaultOptions returns the balanced defaults.
func DefaultOptions() Options {
	return Options{
		TargetDensity:           0.3,
		PreserveEndWords:        true,
		MaxSyllableDeltaPerLine: 2,
		Mode:                    ModeBalanced,
	}
}

// Span records one substitution.
type Span struct {
	Line        int
	Word        int
	Original    string
	Replacement string
}

// Result is the outcome of an enhancement call.
type Result struct {
	Lyrics          string
	Spans           []Span
	AchievedDensity float64
	Notes           []string
}

// Enhancer performs lyric enhancement.
type Enhancer struct {
	syl      *syllable.Syllabifier
	lex      *lexicon.Lexicon
	budget   time.Duration
	validate *validator.Validate
	now      func() time.Time
}

// New creates an enhancer with the default time budget.
func New(syl *syllable.Syllabifier, lex *lexicon.Lexicon) *Enhancer {
	return &Enhancer{
		syl:      syl,
		lex:      lex,
		budget:   DefaultBudget,
		validate: validator.New(),
		now:      time.Now,
	}
}

// SetBudget overrides the total wall-clock budget.
func (e *Enhancer) SetBudget(d time.Duration) {
	e.budget = d
}

// SetClock overrides the time source, for tests.
func (e *Enhancer) SetClock(now func() time.Time) {
	e.now = now
}

// Enhance rewrites the lyrics per the options. Lines whose budget share runs
// out fall back to their unmodified original; the notes record every change
// and every skip.
func (e *Enhancer) Enhance(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := e.validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidOptions, err)
	}

	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	res := &Result{}

	start := e.now()
	deadline := start.Add(e.budget)

	for i, line := range lines {
		if ctx.Err() != nil {
			res.Notes = append(res.Notes, fmt.Sprintf("canceled before line %d; remaining lines unchanged", i+1))
			copy(out[i:], lines[i:])
			break
		}
		now := e.now()
		if !now.Before(deadline) {
			res.Notes = append(res.Notes, fmt.Sprintf("time budget exhausted before line %d; remaining lines unchanged", i+1))
			copy(out[i:], lines[i:])
			break
		}

		// Divide the remaining budget over the remaining lines.
		share := deadline.Sub(now) / time.Duration(len(lines)-i)
		out[i] = e.enhanceLine(line, i, opts, now.Add(share), res)
	}

	res.Lyrics = strings.Join(out, "\n")
	res.AchievedDensity = e.Density(res.Lyrics)
	return res, nil
}

// Density measures the internal-rhyme density of lyrics: the fraction of
// words whose last syllable rhymes with their line's ending, over all lines
// with at least two words.
func (e *Enhancer) Density(text string) float64 {
	var total, rhyming int
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		endPattern := e.lastPattern(cleanWord(words[len(words)-1]))
		if endPattern == nil {
			continue
		}
		for _, tok := range words[:len(words)-1] {
			w := cleanWord(tok)
			if w == "" {
				continue
			}
			total++
			if phonetics.Match(e.lastPattern(w), endPattern) != phonetics.MatchNone {
				rhyming++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(rhyming) / float64(total)
}

func (e *Enhancer) enhanceLine(line string, idx int, opts Options, lineDeadline time.Time, res *Result) string {
	words := strings.Fields(line)
	if len(words) < 2 {
		return line
	}

	endWord := cleanWord(words[len(words)-1])
	endPattern := e.lastPattern(endWord)
	if endPattern == nil {
		return line
	}

	if opts.TargetDensity > 0 && e.lineDensity(words, endPattern) >= opts.TargetDensity {
		res.Notes = append(res.Notes, fmt.Sprintf("line %d already at target density; skipped", idx+1))
		return line
	}

	maxSubs := 2
	allowSlant := true
	switch opts.Mode {
	case ModeSubtle:
		maxSubs = 1
		allowSlant = false
	case ModeAggressive:
		maxSubs = 3
	}

	limit := len(words) - 1
	if !opts.PreserveEndWords && opts.Mode == ModeAggressive {
		limit = len(words)
	}

	subs := 0
	deltaUsed := 0
	changed := false
	for j := 0; j < limit && subs < maxSubs; j++ {
		if !e.now().Before(lineDeadline) {
			if changed {
				res.Notes = append(res.Notes, fmt.Sprintf("line %d share exhausted; reverted", idx+1))
			}
			return line
		}

		tok := words[j]
		w := cleanWord(tok)
		if len(w) < 3 {
			continue
		}
		if phonetics.Match(e.lastPattern(w), endPattern) != phonetics.MatchNone {
			continue // already rhymes with the ending
		}

		for _, v := range e.lex.Variants(w) {
			if v == w {
				continue
			}
			kind := phonetics.Match(e.lastPattern(v), endPattern)
			if kind == phonetics.MatchNone {
				continue
			}
			if kind == phonetics.MatchSlant && !allowSlant {
				continue
			}
			delta := abs(e.syllableCount(v) - e.syllableCount(w))
			if deltaUsed+delta > opts.MaxSyllableDeltaPerLine {
				continue
			}

			words[j] = rebuildToken(tok, v)
			res.Spans = append(res.Spans, Span{Line: idx, Word: j, Original: w, Replacement: v})
			res.Notes = append(res.Notes, fmt.Sprintf("line %d: replaced %q with %q (%s rhyme)", idx+1, w, v, kind))
			deltaUsed += delta
			subs++
			changed = true
			break
		}
	}

	if !changed {
		return line
	}
	return strings.Join(words, " ")
}

func (e *Enhancer) lineDensity(words []string, endPattern []string) float64 {
	if len(words) < 2 {
		return 0
	}
	rhyming := 0
	for _, tok := range words[:len(words)-1] {
		w := cleanWord(tok)
		if w == "" {
			continue
		}
		if phonetics.Match(e.lastPattern(w), endPattern) != phonetics.MatchNone {
			rhyming++
		}
	}
	return float64(rhyming) / float64(len(words)-1)
}

func (e *Enhancer) lastPattern(word string) []string {
	syls := e.syl.SplitWord(word)
	if len(syls) == 0 {
		return nil
	}
	return syls[len(syls)-1].RhymePattern
}

func (e *Enhancer) syllableCount(word string) int {
	return len(e.syl.SplitWord(word))
}

const tokenPunct = ".,!?;:\"'()-"

func cleanWord(tok string) string {
	return strings.ToLower(strings.Trim(tok, tokenPunct))
}

// rebuildToken keeps the original token's surrounding punctuation around the
// replacement word.
func rebuildToken(tok, replacement string) string {
	prefix := tok[:len(tok)-len(strings.TrimLeft(tok, tokenPunct))]
	suffix := tok[len(strings.TrimRight(tok, tokenPunct)):]
	return prefix + replacement + suffix
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
