package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/versebattle/cypher/pkg/cypher/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "rounds.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndReadBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	r := store.Round{
		ID:              "01HROUND",
		BattleID:        "battle-1",
		Round:           1,
		TotalScore:      74,
		RhymeScore:      80,
		FlowScore:       70,
		CreativityScore: 68,
		PerfectRhymes:   2,
		SlantRhymes:     1,
		Scheme:          "7–A²\n6–A¹B¹",
		CreatedAt:       now,
	}
	if err := s.SaveRound(ctx, r); err != nil {
		t.Fatal(err)
	}

	rounds, err := s.RoundsByBattle(ctx, "battle-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 1 {
		t.Fatalf("rounds = %d; want 1", len(rounds))
	}
	got := rounds[0]
	if got.ID != r.ID || got.TotalScore != 74 || got.Scheme != r.Scheme {
		t.Errorf("round = %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v; want %v", got.CreatedAt, now)
	}
}

func TestSaveRoundUpsertsByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := store.Round{ID: "x", BattleID: "b", Round: 0, TotalScore: 50, CreatedAt: time.Now()}
	if err := s.SaveRound(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.TotalScore = 60
	if err := s.SaveRound(ctx, r); err != nil {
		t.Fatal(err)
	}

	rounds, _ := s.RoundsByBattle(ctx, "b")
	if len(rounds) != 1 || rounds[0].TotalScore != 60 {
		t.Errorf("rounds = %+v; want single upserted row with score 60", rounds)
	}
}

func TestRoundsOrdered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, n := range []int{2, 0, 1} {
		r := store.Round{ID: fmt.Sprintf("r%d", n), BattleID: "b", Round: n, CreatedAt: time.Now()}
		if err := s.SaveRound(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	rounds, _ := s.RoundsByBattle(ctx, "b")
	for i, r := range rounds {
		if r.Round != i {
			t.Errorf("rounds[%d].Round = %d; want %d", i, r.Round, i)
		}
	}
}

func TestPruneBattlesKeepsRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		r := store.Round{
			ID:        fmt.Sprintf("r%d", i),
			BattleID:  fmt.Sprintf("battle-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := s.SaveRound(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := s.PruneBattles(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("removed = %d; want 2", removed)
	}
	if rounds, _ := s.RoundsByBattle(ctx, "battle-0"); len(rounds) != 0 {
		t.Error("oldest battle should be pruned")
	}
	if rounds, _ := s.RoundsByBattle(ctx, "battle-3"); len(rounds) != 1 {
		t.Error("newest battle should survive")
	}
}
