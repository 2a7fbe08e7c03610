package history

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"MarketPulse/internal/model"
)

// ratioColumn is the reserved instrument name the composite ratio is stored
// under; it is rewritten to the configured pair name on load.
const ratioColumn = "__ratio__"

// SQLiteBackend persists the snapshot table to a SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend opens (or creates) the database and runs migrations.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external dashboards can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite history opened")
	return b, nil
}

func (b *SQLiteBackend) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT NOT NULL,
			instrument TEXT NOT NULL,
			price      REAL NOT NULL,
			PRIMARY KEY (key, instrument)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_key ON snapshots(key)`,
	}
	for _, s := range stmts {
		if _, err := b.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// LoadAll reads every persisted snapshot, chronological by key.
func (b *SQLiteBackend) LoadAll() ([]model.Snapshot, error) {
	rows, err := b.db.Query(`SELECT key, instrument, price FROM snapshots ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	byKey := make(map[string]*model.Snapshot)
	var order []string
	for rows.Next() {
		var key, instrument string
		var price float64
		if err := rows.Scan(&key, &instrument, &price); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snap, ok := byKey[key]
		if !ok {
			snap = &model.Snapshot{Key: key, Prices: make(map[string]float64)}
			byKey[key] = snap
			order = append(order, key)
		}
		if instrument == ratioColumn {
			snap.Ratio = price
		} else {
			snap.Prices[instrument] = price
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	out := make([]model.Snapshot, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out, nil
}

// SaveAll rewrites the whole table inside one transaction, so a crash
// mid-write leaves the previous committed state intact.
func (b *SQLiteBackend) SaveAll(snaps []model.Snapshot) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO snapshots (key, instrument, price) VALUES (?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, snap := range snaps {
		for name, price := range snap.Prices {
			if _, err := stmt.Exec(snap.Key, name, price); err != nil {
				return fmt.Errorf("insert %s/%s: %w", snap.Key, name, err)
			}
		}
		if _, err := stmt.Exec(snap.Key, ratioColumn, snap.Ratio); err != nil {
			return fmt.Errorf("insert %s ratio: %w", snap.Key, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	log.Info().Msg("closing sqlite history")
	return b.db.Close()
}
