// Package store defines the persistence boundary for authoritative round
// results. Only final scores are written; non-final analyses stay in memory.
package store

import (
	"context"
	"time"
)

// Store persists authoritative battle rounds.
type Store interface {
	Close() error

	// SaveRound persists one final round result.
	SaveRound(ctx context.Context, r Round) error
	// RoundsByBattle returns a battle's rounds in round order.
	RoundsByBattle(ctx context.Context, battleID string) ([]Round, error)
	// PruneBattles deletes all rounds except those of the keep most
	// recently written battles, returning the number of rounds removed.
	PruneBattles(ctx context.Context, keep int) (int64, error)
}

// Round is one persisted final round result.
type Round struct {
	ID       string
	BattleID string
	Round    int

	TotalScore      int
	RhymeScore      int
	FlowScore       int
	CreativityScore int
	PerfectRhymes   int
	SlantRhymes     int

	// Scheme is the newline-joined per-line scheme notation.
	Scheme    string
	CreatedAt time.Time
}
