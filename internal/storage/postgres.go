package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the Store used by the shared service deployment.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn, checks the connection and applies pending
// migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// CurrentVersion returns the current schema version.
func (s *PostgresStore) CurrentVersion(ctx context.Context) (int, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT to_regclass('schema_version') IS NOT NULL`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema version table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = s.pool.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	current, err := s.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	migrations, err := loadMigrations("postgres")
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if _, err := s.pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}
	}
	return nil
}

// SaveSolve writes the solve, its moves and its segments in one transaction.
func (s *PostgresStore) SaveSolve(ctx context.Context, rec *SolveRecord) error {
	id, err := uuid.Parse(rec.SolveID)
	if err != nil {
		return fmt.Errorf("bad solve id %q: %w", rec.SolveID, err)
	}
	gridJSON, err := json.Marshal(rec.Grid)
	if err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO solves (solve_id, created_at, grid_json, move_count, duration_us, source)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, rec.CreatedAt, gridJSON, rec.MoveCount, rec.Duration.Microseconds(), rec.Source)
		if err != nil {
			return fmt.Errorf("failed to create solve: %w", err)
		}

		rows := make([][]any, len(rec.Moves))
		for i, n := range rec.Moves {
			rows[i] = []any{id, i, n}
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"moves"},
			[]string{"solve_id", "move_index", "notation"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to create moves: %w", err)
		}

		batch := &pgx.Batch{}
		for _, seg := range rec.Segments {
			batch.Queue(`
				INSERT INTO phase_segments (solve_id, phase_key, start_index, end_index)
				VALUES ($1, $2, $3, $4)
			`, id, seg.PhaseKey, seg.StartIndex, seg.EndIndex)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to create phase segments: %w", err)
		}
		return nil
	})
}

const pgSolveColumns = `solve_id::text, created_at, grid_json, move_count, duration_us, source`

func scanPgSolve(row pgx.Row) (*Solve, error) {
	var sv Solve
	var gridJSON []byte
	var durationUs int64
	if err := row.Scan(&sv.SolveID, &sv.CreatedAt, &gridJSON, &sv.MoveCount, &durationUs, &sv.Source); err != nil {
		return nil, err
	}
	sv.Duration = time.Duration(durationUs) * time.Microsecond
	if err := json.Unmarshal(gridJSON, &sv.Grid); err != nil {
		return nil, fmt.Errorf("failed to decode grid of solve %s: %w", sv.SolveID, err)
	}
	return &sv, nil
}

// GetSolve loads a solve with its moves and segments.
func (s *PostgresStore) GetSolve(ctx context.Context, solveID string) (*SolveRecord, error) {
	id, err := uuid.Parse(solveID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, solveID)
	}
	row := s.pool.QueryRow(ctx, `SELECT `+pgSolveColumns+` FROM solves WHERE solve_id = $1`, id)
	return s.loadRow(ctx, row, solveID)
}

// LastSolve loads the most recent solve.
func (s *PostgresStore) LastSolve(ctx context.Context) (*SolveRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+pgSolveColumns+` FROM solves ORDER BY created_at DESC LIMIT 1`)
	return s.loadRow(ctx, row, "latest")
}

func (s *PostgresStore) loadRow(ctx context.Context, row pgx.Row, what string) (*SolveRecord, error) {
	sv, err := scanPgSolve(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}

	rec := &SolveRecord{Solve: *sv}

	rows, err := s.pool.Query(ctx, `SELECT notation FROM moves WHERE solve_id = $1::uuid ORDER BY move_index`, sv.SolveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	rec.Moves, err = pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan moves: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT phase_key, start_index, end_index FROM phase_segments
		WHERE solve_id = $1::uuid
		ORDER BY start_index, segment_id
	`, sv.SolveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase segments: %w", err)
	}
	rec.Segments, err = pgx.CollectRows(rows, func(r pgx.CollectableRow) (PhaseSegment, error) {
		var seg PhaseSegment
		err := r.Scan(&seg.PhaseKey, &seg.StartIndex, &seg.EndIndex)
		return seg, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan phase segments: %w", err)
	}
	return rec, nil
}

// ListSolves returns up to limit solves, newest first.
func (s *PostgresStore) ListSolves(ctx context.Context, limit int) ([]Solve, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+pgSolveColumns+` FROM solves ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var out []Solve
	for rows.Next() {
		sv, err := scanPgSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		out = append(out, *sv)
	}
	return out, rows.Err()
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
