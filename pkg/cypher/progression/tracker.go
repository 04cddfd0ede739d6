// Package progression folds per-round rhyme family data into a per-battle
// evolution history for narrative feedback.
package progression

import (
	"sort"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/versebattle/cypher/pkg/cypher/phonetics"
	"github.com/versebattle/cypher/pkg/cypher/scheme"
)

// DefaultCapacity bounds how many battles are tracked simultaneously; the
// least recent battle is dropped beyond it.
const DefaultCapacity = 10

// roundOffset keeps line indices from different rounds distinguishable when
// merged. A round never approaches 100 lines (input is capped at 1000 runes).
const roundOffset = 100

// Battle is the cumulative rhyme state of one battle across rounds.
type Battle struct {
	BattleID  string
	Rounds    int
	Families  []*scheme.Family
	Evolution []string
}

// Stats is the read API view of a battle's progression.
type Stats struct {
	BattleID    string
	FamilyCount int
	Rounds      int
	Evolution   []string
	Complexity  float64
}

// Tracker maintains per-battle progressions behind a bounded cache.
type Tracker struct {
	mu      sync.Mutex
	battles *lru.Cache[string, *Battle]
}

// NewTracker creates a tracker. Non-positive capacity falls back to the
// default.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, _ := lru.New[string, *Battle](capacity)
	return &Tracker{battles: cache}
}

// Record merges one round's families into the battle's cumulative family map,
// increments the round counter, and appends a family snapshot to the
// evolution history. Callers must not record two rounds of the same battle
// concurrently; ordering within a battle is theirs to keep.
func (t *Tracker) Record(battleID string, res *scheme.Result) {
	if battleID == "" || res == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.battles.Get(battleID)
	if !ok {
		b = &Battle{BattleID: battleID}
		t.battles.Add(battleID, b)
	}

	round := b.Rounds
	for _, f := range res.Families {
		merged := false
		for _, existing := range b.Families {
			if phonetics.Match(f.Pattern, existing.Pattern) != phonetics.MatchNone {
				existing.Count += f.Count
				for _, line := range f.Lines {
					existing.Lines = append(existing.Lines, line+round*roundOffset)
				}
				merged = true
				break
			}
		}
		if merged {
			continue
		}
		nf := &scheme.Family{
			Label:   scheme.LabelFor(len(b.Families)),
			Pattern: append([]string(nil), f.Pattern...),
			Count:   f.Count,
		}
		for _, line := range f.Lines {
			nf.Lines = append(nf.Lines, line+round*roundOffset)
		}
		b.Families = append(b.Families, nf)
	}

	b.Rounds++
	b.Evolution = append(b.Evolution, snapshot(b.Families))
}

// Stats returns the battle's progression summary, if tracked.
func (t *Tracker) Stats(battleID string) (Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.battles.Get(battleID)
	if !ok {
		return Stats{}, false
	}
	evolution := append([]string(nil), b.Evolution...)
	return Stats{
		BattleID:    battleID,
		FamilyCount: len(b.Families),
		Rounds:      b.Rounds,
		Evolution:   evolution,
		Complexity:  complexity(b),
	}, true
}

// Len returns how many battles are currently tracked.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.battles.Len()
}

// snapshot renders the sorted concatenation of active family labels.
func snapshot(families []*scheme.Family) string {
	labels := make([]string, 0, len(families))
	for _, f := range families {
		labels = append(labels, f.Label)
	}
	sort.Strings(labels)
	return strings.Join(labels, "")
}

// complexity is a weighted combination of family count, distinct-snapshot
// count, and per-round family growth, 0-100.
func complexity(b *Battle) float64 {
	if b.Rounds == 0 {
		return 0
	}
	distinct := make(map[string]struct{}, len(b.Evolution))
	for _, snap := range b.Evolution {
		distinct[snap] = struct{}{}
	}

	familyPart := capAt(float64(len(b.Families))*10, 100)
	snapshotPart := capAt(float64(len(distinct))*20, 100)
	perRoundPart := capAt(float64(len(b.Families))/float64(b.Rounds)*25, 100)

	return 0.5*familyPart + 0.3*snapshotPart + 0.2*perRoundPart
}

func capAt(v, hi float64) float64 {
	if v > hi {
		return hi
	}
	return v
}
