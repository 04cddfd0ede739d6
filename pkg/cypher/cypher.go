// Package cypher is the rhyme analysis engine facade: it syllabifies a verse,
// clusters rhyme families, renders scheme annotations, and scores the result,
// with throttling and caching for non-authoritative calls.
package cypher

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/versebattle/cypher/pkg/cypher/config"
	"github.com/versebattle/cypher/pkg/cypher/enhance"
	"github.com/versebattle/cypher/pkg/cypher/guard"
	"github.com/versebattle/cypher/pkg/cypher/internalerr"
	"github.com/versebattle/cypher/pkg/cypher/lexicon"
	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/progression"
	"github.com/versebattle/cypher/pkg/cypher/report"
	"github.com/versebattle/cypher/pkg/cypher/scheme"
	"github.com/versebattle/cypher/pkg/cypher/scoring"
	"github.com/versebattle/cypher/pkg/cypher/store"
	"github.com/versebattle/cypher/pkg/cypher/syllable"
	"github.com/versebattle/cypher/pkg/cypher/verse"
)

// fingerprintRunes is how much of the text participates in the cache key.
const fingerprintRunes = 64

// Options configures an Engine instance.
type Options struct {
	// DictPath points at a CMU-format pronunciation dictionary. When empty
	// or unreadable the engine degrades to the built-in table.
	DictPath string
	// Lexicon overrides the built-in word tables.
	Lexicon *lexicon.Lexicon
	// Store receives authoritative round results; nil disables persistence.
	Store store.Store
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Tuning overrides the runtime limits; zero fields keep the defaults.
	Tuning config.Tuning
}

// Request is one analysis call.
type Request struct {
	Text     string
	BattleID string
	// FinalScore marks the authoritative scoring call for a round: it
	// bypasses the cache and both guards, and persists the result.
	FinalScore bool
}

// Result bundles the analyzed scheme with its score breakdown.
type Result struct {
	Scheme *scheme.Result
	Scores scoring.Breakdown
}

// Engine is the shared rhyme analysis engine.
type Engine struct {
	dict     *phonetics.Dictionary
	syl      *syllable.Syllabifier
	lex      *lexicon.Lexicon
	scorer   *scoring.Scorer
	guard    *guard.Guard
	tracker  *progression.Tracker
	enhancer *enhance.Enhancer
	reports  *report.Builder
	store    store.Store
	cache    *expirable.LRU[string, *Result]
	entropy  *ulid.MonotonicEntropy
	log      zerolog.Logger
}

// New creates an engine with the given dependencies.
func New(opts Options) (*Engine, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	tuning := fillTuning(opts.Tuning)

	dict := phonetics.Builtin()
	if opts.DictPath != "" {
		loaded, err := phonetics.LoadFile(opts.DictPath)
		if err != nil {
			log.Warn().Err(err).Str("path", opts.DictPath).
				Msg("pronunciation dictionary unavailable, using built-in table")
		} else {
			dict = loaded
		}
	}

	lex := opts.Lexicon
	if lex == nil {
		lex = lexicon.Default()
	}

	weights := scoring.Weights{
		Rhyme:      tuning.RhymeWeight,
		Flow:       tuning.FlowWeight,
		Creativity: tuning.CreativityWeight,
	}

	syl := syllable.New(dict)
	enhancer := enhance.New(syl, lex)
	enhancer.SetBudget(tuning.EnhanceBudget.Std())

	e := &Engine{
		dict:     dict,
		syl:      syl,
		lex:      lex,
		scorer:   scoring.NewScorer(weights, lex),
		guard:    guard.New(tuning.GuardInterval.Std(), tuning.GuardDepth),
		tracker:  progression.NewTracker(tuning.BattleCapacity),
		enhancer: enhancer,
		reports:  report.New(),
		store:    opts.Store,
		cache:    expirable.NewLRU[string, *Result](tuning.CacheCapacity, nil, tuning.CacheTTL.Std()),
		entropy:  ulid.Monotonic(rand.Reader, 0),
		log:      log,
	}
	log.Info().Int("dictionary_words", dict.Size()).Msg("engine ready")
	return e, nil
}

// fillTuning replaces zero fields with the defaults.
func fillTuning(t config.Tuning) config.Tuning {
	d := config.DefaultTuning()
	if t.CacheCapacity <= 0 {
		t.CacheCapacity = d.CacheCapacity
	}
	if t.CacheTTL <= 0 {
		t.CacheTTL = d.CacheTTL
	}
	if t.GuardInterval <= 0 {
		t.GuardInterval = d.GuardInterval
	}
	if t.GuardDepth <= 0 {
		t.GuardDepth = d.GuardDepth
	}
	if t.BattleCapacity <= 0 {
		t.BattleCapacity = d.BattleCapacity
	}
	if t.EnhanceBudget <= 0 {
		t.EnhanceBudget = d.EnhanceBudget
	}
	if t.RhymeWeight+t.FlowWeight+t.CreativityWeight == 0 {
		t.RhymeWeight = d.RhymeWeight
		t.FlowWeight = d.FlowWeight
		t.CreativityWeight = d.CreativityWeight
	}
	return t
}

// Close shuts the engine down.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Analyze runs the full analysis pipeline on a verse.
//
// Non-final calls consult the result cache first, then the reentrancy/depth
// guard; a guard rejection yields a neutral empty result rather than an error,
// so battle flow never stalls. Final-score calls bypass cache and guard
// unconditionally and persist the result when a store is configured; their
// failures propagate.
func (e *Engine) Analyze(ctx context.Context, req Request) (*Result, error) {
	text := verse.Normalize(req.Text)

	if req.FinalScore {
		res := e.buildResult(e.analyze(text))
		e.tracker.Record(req.BattleID, res.Scheme)
		if e.store != nil {
			if err := e.saveRound(ctx, req.BattleID, res); err != nil {
				return res, err
			}
		}
		return res, nil
	}

	key := fingerprint(req.BattleID, text)
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	release, ok := e.guard.TryAcquire()
	if !ok {
		e.log.Debug().Str("battle_id", req.BattleID).Msg("analysis throttled")
		return &Result{Scheme: scheme.Empty()}, nil
	}
	defer release()

	analyzed, clean := e.analyzeRecovered(text)
	res := e.buildResult(analyzed)
	if clean {
		e.tracker.Record(req.BattleID, res.Scheme)
		e.cache.Add(key, res)
	}
	return res, nil
}

// Summarize derives the enhanced round summary for an analysis, folding in
// the battle's progression complexity.
func (e *Engine) Summarize(res *Result, battleID string) report.Summary {
	complexity := 0.0
	if stats, ok := e.tracker.Stats(battleID); ok {
		complexity = stats.Complexity
	}
	return e.reports.Build(battleID, res.Scheme, complexity)
}

// Enhance rewrites a verse to add internal rhymes.
func (e *Engine) Enhance(ctx context.Context, text string, opts enhance.Options) (*enhance.Result, error) {
	return e.enhancer.Enhance(ctx, verse.Normalize(text), opts)
}

// Progression returns a battle's tracked progression, if any.
func (e *Engine) Progression(battleID string) (progression.Stats, bool) {
	return e.tracker.Stats(battleID)
}

// Rounds returns a battle's persisted rounds.
func (e *Engine) Rounds(ctx context.Context, battleID string) ([]store.Round, error) {
	if e.store == nil {
		return nil, internalerr.ErrStoreUnavailable
	}
	return e.store.RoundsByBattle(ctx, battleID)
}

// analyze is the core pipeline: syllabify each line, assign end-rhyme
// families in a first pass, then scan internal rhymes against the complete
// family set and render annotations in a second pass.
func (e *Engine) analyze(text string) *scheme.Result {
	res := &scheme.Result{}
	cl := scheme.NewClusterer()

	for i, lineText := range verse.Lines(text) {
		words := verse.Words(lineText)
		syls := e.syl.SplitLine(lineText)
		line := scheme.Line{
			Index:         i,
			Text:          lineText,
			Words:         words,
			Syllables:     syls,
			SyllableCount: len(syls),
			WordCount:     len(words),
		}
		if len(words) > 0 {
			line.LastWordSyllables = len(e.syl.SplitWord(words[len(words)-1]))
		}
		if len(syls) > 0 {
			label, kind := cl.AssignEnd(line.Syllables, i)
			line.EndFamily = label
			line.EndMatch = kind
			line.EndPattern = line.Syllables[len(line.Syllables)-1].RhymePattern
		}
		res.Lines = append(res.Lines, line)
	}

	for i := range res.Lines {
		res.Lines[i].InternalCounts = cl.ScanInternal(res.Lines[i].Syllables)
		scheme.Annotate(&res.Lines[i])
		res.Scheme = append(res.Scheme, res.Lines[i].Scheme)
	}

	res.Families = cl.Families()
	scheme.Tally(res)
	return res
}

// analyzeRecovered wraps analyze so an unexpected panic degrades to the
// neutral empty result instead of taking the battle down. The guard release
// still runs via the caller's defer.
func (e *Engine) analyzeRecovered(text string) (res *scheme.Result, clean bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("analysis failed, returning neutral result")
			res = scheme.Empty()
			clean = false
		}
	}()
	return e.analyze(text), true
}

// buildResult scores the analyzed scheme and stamps the rhyme density onto it.
func (e *Engine) buildResult(res *scheme.Result) *Result {
	scores := e.scorer.Score(res)
	res.RhymeDensity = scores.Rhyme
	return &Result{Scheme: res, Scores: scores}
}

func (e *Engine) saveRound(ctx context.Context, battleID string, res *Result) error {
	roundNo := 0
	if stats, ok := e.tracker.Stats(battleID); ok && stats.Rounds > 0 {
		roundNo = stats.Rounds - 1
	}

	rec := store.Round{
		ID:              ulid.MustNew(ulid.Now(), e.entropy).String(),
		BattleID:        battleID,
		Round:           roundNo,
		TotalScore:      res.Scores.Total,
		RhymeScore:      int(math.Round(res.Scores.Rhyme)),
		FlowScore:       int(math.Round(res.Scores.Flow)),
		CreativityScore: int(math.Round(res.Scores.Creativity)),
		PerfectRhymes:   res.Scheme.PerfectCount,
		SlantRhymes:     res.Scheme.SlantCount,
		Scheme:          strings.Join(res.Scheme.Scheme, "\n"),
		CreatedAt:       time.Now().UTC(),
	}
	if err := e.store.SaveRound(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	return nil
}

// fingerprint keys the result cache on the battle and a bounded text prefix.
func fingerprint(battleID, text string) string {
	runes := []rune(text)
	if len(runes) > fingerprintRunes {
		runes = runes[:fingerprintRunes]
	}
	return battleID + "|" + string(runes)
}
