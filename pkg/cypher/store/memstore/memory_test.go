package memstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/versebattle/cypher/pkg/cypher/store"
)

func TestSaveAndReadBack(t *testing.T) {
	s := New()
	ctx := context.Background()

	r := store.Round{
		ID:            "01ROUND",
		BattleID:      "battle-1",
		Round:         0,
		TotalScore:    74,
		RhymeScore:    80,
		PerfectRhymes: 2,
		Scheme:        "7–A²",
		CreatedAt:     time.Now(),
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
	if rounds[0].TotalScore != 74 || rounds[0].Scheme != "7–A²" {
		t.Errorf("round = %+v", rounds[0])
	}
}

func TestSaveRoundUpsertsByID(t *testing.T) {
	s := New()
	ctx := context.Background()

	r := store.Round{ID: "x", BattleID: "b", Round: 0, TotalScore: 50}
	if err := s.SaveRound(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.TotalScore = 60
	if err := s.SaveRound(ctx, r); err != nil {
		t.Fatal(err)
	}

	rounds, _ := s.RoundsByBattle(ctx, "b")
	if len(rounds) != 1 {
		t.Fatalf("rounds = %d; same id should replace", len(rounds))
	}
	if rounds[0].TotalScore != 60 {
		t.Errorf("score = %d; want 60", rounds[0].TotalScore)
	}
}

func TestRoundsOrdered(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, n := range []int{2, 0, 1} {
		r := store.Round{ID: fmt.Sprintf("r%d", n), BattleID: "b", Round: n}
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
	s := New()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		r := store.Round{ID: fmt.Sprintf("r%d", i), BattleID: fmt.Sprintf("battle-%d", i), Round: 0}
		if err := s.SaveRound(ctx, r); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
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

func TestRoundsUnknownBattle(t *testing.T) {
	s := New()
	rounds, err := s.RoundsByBattle(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if len(rounds) != 0 {
		t.Errorf("rounds = %v; want none", rounds)
	}
}
