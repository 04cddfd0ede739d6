// Package memstore is an in-memory implementation of store.Store for tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/versebattle/cypher/pkg/cypher/store"
)

// Store is an in-memory round store.
type Store struct {
	mu      sync.RWMutex
	rounds  map[string][]store.Round // battle id -> rounds
	touched map[string]time.Time     // battle id -> last write
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		rounds:  make(map[string][]store.Round),
		touched: make(map[string]time.Time),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRound persists one round, replacing a previous round with the same id.
func (s *Store) SaveRound(ctx context.Context, r store.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.rounds[r.BattleID]
	replaced := false
	for i := range list {
		if list[i].ID == r.ID {
			list[i] = r
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, r)
	}
	s.rounds[r.BattleID] = list
	s.touched[r.BattleID] = time.Now()
	return nil
}

// RoundsByBattle returns a battle's rounds in round order.
func (s *Store) RoundsByBattle(ctx context.Context, battleID string) ([]store.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]store.Round(nil), s.rounds[battleID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out, nil
}

// PruneBattles deletes rounds of all but the keep most recently written
// battles.
func (s *Store) PruneBattles(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	ids := make([]string, 0, len(s.touched))
	for id := range s.touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return s.touched[ids[i]].After(s.touched[ids[j]]) })

	var removed int64
	for i, id := range ids {
		if i < keep {
			continue
		}
		removed += int64(len(s.rounds[id]))
		delete(s.rounds, id)
		delete(s.touched, id)
	}
	return removed, nil
}
