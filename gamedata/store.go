package gamedata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kozlovskia/Draft-Simulator/game"

	_ "modernc.org/sqlite"
)

var ErrEmptyStore = errors.New("store holds no champions")

// Store keeps a roster and scoring table in a sqlite file.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the sqlite database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS champions (
			name TEXT PRIMARY KEY,
			role TEXT NOT NULL,
			popularity REAL NOT NULL,
			win_probability REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pairs (
			champion TEXT NOT NULL,
			other TEXT NOT NULL,
			synergy REAL NOT NULL,
			counter REAL NOT NULL,
			PRIMARY KEY (champion, other)
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save replaces the stored table with data in one transaction.
func (s *Store) Save(ctx context.Context, data *game.GameData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op after Commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM pairs"); err != nil {
		return fmt.Errorf("failed to clear pairs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM champions"); err != nil {
		return fmt.Errorf("failed to clear champions: %w", err)
	}

	stmtChampions, err := tx.PrepareContext(ctx, `
		INSERT INTO champions (name, role, popularity, win_probability) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare champion insert: %w", err)
	}
	defer stmtChampions.Close()

	stmtPairs, err := tx.PrepareContext(ctx, `
		INSERT INTO pairs (champion, other, synergy, counter) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare pair insert: %w", err)
	}
	defer stmtPairs.Close()

	for champion, stats := range data.Stats() {
		if _, err := stmtChampions.ExecContext(ctx, string(champion), string(stats.Role), stats.Popularity, stats.WinProbability); err != nil {
			return fmt.Errorf("failed to insert %s: %w", champion, err)
		}
		for other, synergy := range stats.Synergies {
			if _, err := stmtPairs.ExecContext(ctx, string(champion), string(other), synergy, stats.Counters[other]); err != nil {
				return fmt.Errorf("failed to insert pair %s/%s: %w", champion, other, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Load rebuilds the game data, validating it like any other source.
func (s *Store) Load(ctx context.Context) (*game.GameData, error) {
	stats := map[game.Champion]game.ChampionStats{}

	rows, err := s.db.QueryContext(ctx, "SELECT name, role, popularity, win_probability FROM champions")
	if err != nil {
		return nil, fmt.Errorf("failed to query champions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, role string
		var cs game.ChampionStats
		if err := rows.Scan(&name, &role, &cs.Popularity, &cs.WinProbability); err != nil {
			return nil, fmt.Errorf("failed to scan champion: %w", err)
		}
		cs.Role = game.Role(role)
		cs.Synergies = map[game.Champion]float64{}
		cs.Counters = map[game.Champion]float64{}
		stats[game.Champion(name)] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read champions: %w", err)
	}
	if len(stats) == 0 {
		return nil, ErrEmptyStore
	}

	pairs, err := s.db.QueryContext(ctx, "SELECT champion, other, synergy, counter FROM pairs")
	if err != nil {
		return nil, fmt.Errorf("failed to query pairs: %w", err)
	}
	defer pairs.Close()
	for pairs.Next() {
		var champion, other string
		var synergy, counter float64
		if err := pairs.Scan(&champion, &other, &synergy, &counter); err != nil {
			return nil, fmt.Errorf("failed to scan pair: %w", err)
		}
		cs, ok := stats[game.Champion(champion)]
		if !ok {
			return nil, &game.UnknownChampionError{Champion: game.Champion(champion), Other: game.Champion(other)}
		}
		cs.Synergies[game.Champion(other)] = synergy
		cs.Counters[game.Champion(other)] = counter
	}
	if err := pairs.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pairs: %w", err)
	}

	return game.NewGameData(stats)
}

// Count returns the number of stored champions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM champions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count champions: %w", err)
	}
	return count, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
