package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesolver"
)

// Solve is one stored solve, without its moves.
type Solve struct {
	SolveID   string
	CreatedAt time.Time
	Grid      cubesolver.Grid
	MoveCount int
	Duration  time.Duration
	Source    string
}

// timeLayout is fixed width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create inserts s through ex, which is usually a transaction.
func (r *SolveRepository) Create(ctx context.Context, ex execer, s *Solve) error {
	gridJSON, err := json.Marshal(s.Grid)
	if err != nil {
		return fmt.Errorf("failed to encode grid: %w", err)
	}

	_, err = ex.ExecContext(ctx, `
		INSERT INTO solves (solve_id, created_at, grid_json, move_count, duration_us, source)
		VALUES (?, ?, ?, ?, ?, ?)
	`, s.SolveID, s.CreatedAt.UTC().Format(timeLayout), string(gridJSON), s.MoveCount, s.Duration.Microseconds(), s.Source)
	if err != nil {
		return fmt.Errorf("failed to create solve: %w", err)
	}
	return nil
}

const solveColumns = `solve_id, created_at, grid_json, move_count, duration_us, source`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolve(row rowScanner) (*Solve, error) {
	var s Solve
	var createdAt, gridJSON string
	var durationUs int64

	if err := row.Scan(&s.SolveID, &createdAt, &gridJSON, &s.MoveCount, &durationUs, &s.Source); err != nil {
		return nil, err
	}

	s.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	s.Duration = time.Duration(durationUs) * time.Microsecond
	if err := json.Unmarshal([]byte(gridJSON), &s.Grid); err != nil {
		return nil, fmt.Errorf("failed to decode grid of solve %s: %w", s.SolveID, err)
	}
	return &s, nil
}

// Get retrieves a solve by ID. A missing solve gives nil, nil.
func (r *SolveRepository) Get(ctx context.Context, solveID string) (*Solve, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)
	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast(ctx context.Context) (*Solve, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+solveColumns+` FROM solves
		ORDER BY created_at DESC
		LIMIT 1
	`)
	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}
	return s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(ctx context.Context, limit int) ([]Solve, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+solveColumns+` FROM solves
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	return solves, rows.Err()
}

// Delete deletes a solve and its moves and segments.
func (r *SolveRepository) Delete(ctx context.Context, solveID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}

// MoveRepository stores the move list of each solve.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// CreateBatch inserts the moves of one solve in order.
func (r *MoveRepository) CreateBatch(ctx context.Context, ex execer, solveID string, notations []string) error {
	for i, n := range notations {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO moves (solve_id, move_index, notation)
			VALUES (?, ?, ?)
		`, solveID, i, n)
		if err != nil {
			return fmt.Errorf("failed to create move %d: %w", i, err)
		}
	}
	return nil
}

// GetBySolve returns the moves of a solve in order.
func (r *MoveRepository) GetBySolve(ctx context.Context, solveID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT notation FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, n)
	}
	return moves, rows.Err()
}
