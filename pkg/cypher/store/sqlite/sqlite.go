// Package sqlite implements the round store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/versebattle/cypher/pkg/cypher/store"
)

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the schema
// initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS rounds (
	id TEXT PRIMARY KEY,
	battle_id TEXT NOT NULL,
	round INTEGER NOT NULL,
	total_score INTEGER NOT NULL,
	rhyme_score INTEGER NOT NULL,
	flow_score INTEGER NOT NULL,
	creativity_score INTEGER NOT NULL,
	perfect_rhymes INTEGER NOT NULL,
	slant_rhymes INTEGER NOT NULL,
	scheme TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rounds_battle ON rounds(battle_id, round);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRound persists one final round result.
func (s *sqliteStore) SaveRound(ctx context.Context, r store.Round) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO rounds (id, battle_id, round, total_score, rhyme_score, flow_score,
	creativity_score, perfect_rhymes, slant_rhymes, scheme, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	total_score = excluded.total_score,
	rhyme_score = excluded.rhyme_score,
	flow_score = excluded.flow_score,
	creativity_score = excluded.creativity_score,
	perfect_rhymes = excluded.perfect_rhymes,
	slant_rhymes = excluded.slant_rhymes,
	scheme = excluded.scheme`,
		r.ID, r.BattleID, r.Round, r.TotalScore, r.RhymeScore, r.FlowScore,
		r.CreativityScore, r.PerfectRhymes, r.SlantRhymes, r.Scheme,
		r.CreatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// RoundsByBattle returns a battle's rounds in round order.
func (s *sqliteStore) RoundsByBattle(ctx context.Context, battleID string) ([]store.Round, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, battle_id, round, total_score, rhyme_score, flow_score,
	creativity_score, perfect_rhymes, slant_rhymes, scheme, created_at
FROM rounds WHERE battle_id = ? ORDER BY round ASC`, battleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Round
	for rows.Next() {
		var r store.Round
		var created string
		if err := rows.Scan(&r.ID, &r.BattleID, &r.Round, &r.TotalScore,
			&r.RhymeScore, &r.FlowScore, &r.CreativityScore,
			&r.PerfectRhymes, &r.SlantRhymes, &r.Scheme, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// PruneBattles deletes rounds of all but the keep most recently written
// battles.
func (s *sqliteStore) PruneBattles(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx, `
DELETE FROM rounds WHERE battle_id NOT IN (
	SELECT battle_id FROM rounds
	GROUP BY battle_id
	ORDER BY MAX(created_at) DESC
	LIMIT ?
)`, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
