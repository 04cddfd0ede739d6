package cypher

import (
	"context"
	"strings"
	"testing"

	"github.com/versebattle/cypher/pkg/cypher/enhance"
	"github.com/versebattle/cypher/pkg/cypher/store/memstore"
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	eng, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { eng.Close() })
	return eng
}

func TestAnalyzeMonorhymeVerse(t *testing.T) {
	eng := newTestEngine(t, Options{})

	res, err := eng.Analyze(context.Background(), Request{
		Text:     "fire\nhigher\ndesire\nbarbed wire",
		BattleID: "battle-1",
	})
	if err != nil {
		t.Fatal(err)
	}

	sch := res.Scheme
	if len(sch.Lines) != 4 {
		t.Fatalf("lines = %d; want 4", len(sch.Lines))
	}
	if len(sch.Families) != 1 {
		t.Fatalf("families = %d; all endings share one family", len(sch.Families))
	}
	for i, line := range sch.Lines {
		if line.EndFamily != "A" {
			t.Errorf("line %d end family = %q; want A", i, line.EndFamily)
		}
	}
	if sch.EndMatches != 3 || sch.AdjacentPairs != 3 {
		t.Errorf("end matches = %d/%d; want 3/3", sch.EndMatches, sch.AdjacentPairs)
	}
	if res.Scores.Total <= 0 {
		t.Errorf("total score = %d; want positive", res.Scores.Total)
	}
	if sch.RhymeDensity != res.Scores.Rhyme {
		t.Errorf("density %f should mirror the rhyme sub-score %f", sch.RhymeDensity, res.Scores.Rhyme)
	}
}

func TestAnalyzeUnrelatedEndings(t *testing.T) {
	eng := newTestEngine(t, Options{})

	res, err := eng.Analyze(context.Background(), Request{Text: "cat\ndog"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Scheme.Families) != 2 {
		t.Errorf("families = %d; want 2 distinct", len(res.Scheme.Families))
	}
	if res.Scheme.EndMatches != 0 {
		t.Errorf("end matches = %d; want 0", res.Scheme.EndMatches)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	eng := newTestEngine(t, Options{})

	for _, text := range []string{"", "   \n  \n"} {
		res, err := eng.Analyze(context.Background(), Request{Text: text})
		if err != nil {
			t.Fatal(err)
		}
		sch := res.Scheme
		if len(sch.Lines) != 0 || len(sch.Families) != 0 {
			t.Errorf("input %q: lines/families = %d/%d; want 0/0", text, len(sch.Lines), len(sch.Families))
		}
		if sch.RhymeDensity != 0 || sch.PerfectCount != 0 || sch.SlantCount != 0 {
			t.Errorf("input %q: counts should be zero", text)
		}
	}
}

func TestAnalyzeCachesNonFinalResults(t *testing.T) {
	eng := newTestEngine(t, Options{})
	req := Request{Text: "time\nrhyme", BattleID: "battle-c"}

	first, err := eng.Analyze(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := eng.Analyze(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("identical non-final requests should hit the cache")
	}
	// The cached round was recorded once.
	stats, ok := eng.Progression("battle-c")
	if !ok || stats.Rounds != 1 {
		t.Errorf("rounds = %d; cache hit must not re-record", stats.Rounds)
	}
}

func TestAnalyzeThrottledReturnsNeutral(t *testing.T) {
	eng := newTestEngine(t, Options{})

	// Simulate an analysis in progress that started just now.
	release, ok := eng.guard.TryAcquire()
	if !ok {
		t.Fatal("setup acquire should succeed")
	}
	defer release()

	res, err := eng.Analyze(context.Background(), Request{Text: "time\nrhyme"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Scheme.Lines) != 0 || res.Scores.Total != 0 {
		t.Errorf("throttled call should return the neutral result, got %+v", res)
	}
}

func TestFinalScoreBypassesGuard(t *testing.T) {
	eng := newTestEngine(t, Options{})
	req := Request{Text: "fire\nhigher", BattleID: "battle-f", FinalScore: true}

	// Two final calls in immediate succession must both fully execute.
	for i := 0; i < 2; i++ {
		res, err := eng.Analyze(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Scheme.Lines) != 2 {
			t.Fatalf("call %d: lines = %d; final calls must not degrade", i, len(res.Scheme.Lines))
		}
	}
	stats, _ := eng.Progression("battle-f")
	if stats.Rounds != 2 {
		t.Errorf("rounds = %d; want both finals recorded", stats.Rounds)
	}
}

func TestFinalScorePersistsRounds(t *testing.T) {
	mem := memstore.New()
	eng := newTestEngine(t, Options{Store: mem})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := eng.Analyze(ctx, Request{
			Text:       "spit fire every time\nevery bar a perfect rhyme",
			BattleID:   "battle-p",
			FinalScore: true,
		}); err != nil {
			t.Fatal(err)
		}
	}

	rounds, err := eng.Rounds(ctx, "battle-p")
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 2 {
		t.Fatalf("persisted rounds = %d; want 2", len(rounds))
	}
	if rounds[0].Round != 0 || rounds[1].Round != 1 {
		t.Errorf("round numbers = %d,%d; want 0,1", rounds[0].Round, rounds[1].Round)
	}
	if rounds[0].ID == rounds[1].ID {
		t.Error("round ids should be unique")
	}
	if rounds[0].Scheme == "" {
		t.Error("scheme notation should be persisted")
	}
}

func TestNonFinalSkipsStore(t *testing.T) {
	mem := memstore.New()
	eng := newTestEngine(t, Options{Store: mem})
	ctx := context.Background()

	if _, err := eng.Analyze(ctx, Request{Text: "cat\ndog", BattleID: "battle-n"}); err != nil {
		t.Fatal(err)
	}
	rounds, err := eng.Rounds(ctx, "battle-n")
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 0 {
		t.Errorf("rounds = %d; non-final calls must not persist", len(rounds))
	}
}

func TestSummarizeCarriesComplexity(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	res, err := eng.Analyze(ctx, Request{
		Text:     "fire\nhigher\ndesire",
		BattleID: "battle-s",
	})
	if err != nil {
		t.Fatal(err)
	}

	sum := eng.Summarize(res, "battle-s")
	if sum.BattleID != "battle-s" || sum.ID == "" {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Complexity <= 0 {
		t.Errorf("complexity = %f; a tracked battle should score above 0", sum.Complexity)
	}
	if sum.RhymeDensity != res.Scheme.RhymeDensity {
		t.Errorf("density = %f; want %f", sum.RhymeDensity, res.Scheme.RhymeDensity)
	}
}

func TestEnhanceRoundTrip(t *testing.T) {
	eng := newTestEngine(t, Options{})
	ctx := context.Background()

	in := "i grip my gun in the night\nthese rappers fold when we fight"
	before, err := eng.Analyze(ctx, Request{Text: in})
	if err != nil {
		t.Fatal(err)
	}

	out, err := eng.Enhance(ctx, in, enhance.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	// End words survive enhancement.
	for i, line := range strings.Split(out.Lyrics, "\n") {
		inWords := strings.Fields(strings.Split(in, "\n")[i])
		outWords := strings.Fields(line)
		if inWords[len(inWords)-1] != outWords[len(outWords)-1] {
			t.Errorf("line %d end word changed", i)
		}
	}

	after, err := eng.Analyze(ctx, Request{Text: out.Lyrics})
	if err != nil {
		t.Fatal(err)
	}
	if after.Scheme.RhymeDensity < before.Scheme.RhymeDensity {
		t.Errorf("density dropped after enhancement: %f -> %f",
			before.Scheme.RhymeDensity, after.Scheme.RhymeDensity)
	}
}

func TestRoundsWithoutStore(t *testing.T) {
	eng := newTestEngine(t, Options{})
	if _, err := eng.Rounds(context.Background(), "b"); err == nil {
		t.Error("rounds without a store should error")
	}
}

func TestDictionaryFallback(t *testing.T) {
	eng := newTestEngine(t, Options{DictPath: "/nonexistent/cmudict.txt"})
	if eng.dict.Size() == 0 {
		t.Error("missing dictionary file should fall back to the built-in table")
	}
}
