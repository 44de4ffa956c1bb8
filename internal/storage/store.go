package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/config"
)

// ErrNotFound is returned when a solve does not exist.
var ErrNotFound = errors.New("storage: solve not found")

// SolveRecord is a solve with its moves and phase segments.
type SolveRecord struct {
	Solve
	Moves    []string
	Segments []PhaseSegment
}

// NewRecord builds a record for a finished solve of g. The ID and
// creation time are assigned here.
func NewRecord(g cubesolver.Grid, sol *cubesolver.Solution, elapsed time.Duration, source string) *SolveRecord {
	rec := &SolveRecord{
		Solve: Solve{
			SolveID:   uuid.New().String(),
			CreatedAt: time.Now().UTC(),
			Grid:      g,
			MoveCount: len(sol.Moves),
			Duration:  elapsed,
			Source:    source,
		},
		Moves: sol.Notation(),
	}
	for _, seg := range sol.Segments {
		rec.Segments = append(rec.Segments, PhaseSegment{
			PhaseKey:   seg.Phase.String(),
			StartIndex: seg.Start,
			EndIndex:   seg.End,
		})
	}
	return rec
}

// Solution rebuilds the solver result held by the record.
func (r *SolveRecord) Solution() (*cubesolver.Solution, error) {
	sol := &cubesolver.Solution{}
	for _, n := range r.Moves {
		m, err := cubesolver.ParseMove(n)
		if err != nil {
			return nil, err
		}
		sol.Moves = append(sol.Moves, m)
	}
	for _, s := range r.Segments {
		p, ok := cubesolver.ParsePhase(s.PhaseKey)
		if !ok {
			return nil, fmt.Errorf("unknown phase %q in solve %s", s.PhaseKey, r.SolveID)
		}
		sol.Segments = append(sol.Segments, cubesolver.Segment{Phase: p, Start: s.StartIndex, End: s.EndIndex})
	}
	return sol, nil
}

// Store is the solve history used by the CLI and the server.
type Store interface {
	SaveSolve(ctx context.Context, rec *SolveRecord) error
	GetSolve(ctx context.Context, solveID string) (*SolveRecord, error)
	LastSolve(ctx context.Context) (*SolveRecord, error)
	ListSolves(ctx context.Context, limit int) ([]Solve, error)
	Close() error
}

// OpenStore opens the store selected by cfg. The "none" driver gives a
// nil Store.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "none":
		return nil, nil
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN)
	case "sqlite", "":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = DefaultDBPath(); err != nil {
				return nil, err
			}
		}
		db, err := Open(path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SQLiteStore is the Store over a local SQLite database.
type SQLiteStore struct {
	db     *DB
	solves *SolveRepository
	moves  *MoveRepository
	phases *PhaseRepository
}

// NewSQLiteStore wraps db.
func NewSQLiteStore(db *DB) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		solves: NewSolveRepository(db),
		moves:  NewMoveRepository(db),
		phases: NewPhaseRepository(db),
	}
}

// DB returns the underlying database.
func (s *SQLiteStore) DB() *DB {
	return s.db
}

// SaveSolve writes the solve, its moves and its segments in one transaction.
func (s *SQLiteStore) SaveSolve(ctx context.Context, rec *SolveRecord) error {
	return s.db.Transaction(func(tx *sql.Tx) error {
		if err := s.solves.Create(ctx, tx, &rec.Solve); err != nil {
			return err
		}
		if err := s.moves.CreateBatch(ctx, tx, rec.SolveID, rec.Moves); err != nil {
			return err
		}
		return s.phases.CreateSegments(ctx, tx, rec.SolveID, rec.Segments)
	})
}

// GetSolve loads a solve with its moves and segments.
func (s *SQLiteStore) GetSolve(ctx context.Context, solveID string) (*SolveRecord, error) {
	solve, err := s.solves.Get(ctx, solveID)
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, solveID)
	}
	return s.load(ctx, solve)
}

// LastSolve loads the most recent solve.
func (s *SQLiteStore) LastSolve(ctx context.Context) (*SolveRecord, error) {
	solve, err := s.solves.GetLast(ctx)
	if err != nil {
		return nil, err
	}
	if solve == nil {
		return nil, ErrNotFound
	}
	return s.load(ctx, solve)
}

func (s *SQLiteStore) load(ctx context.Context, solve *Solve) (*SolveRecord, error) {
	moves, err := s.moves.GetBySolve(ctx, solve.SolveID)
	if err != nil {
		return nil, err
	}
	segments, err := s.phases.GetSegments(ctx, solve.SolveID)
	if err != nil {
		return nil, err
	}
	return &SolveRecord{Solve: *solve, Moves: moves, Segments: segments}, nil
}

// ListSolves returns up to limit solves, newest first.
func (s *SQLiteStore) ListSolves(ctx context.Context, limit int) ([]Solve, error) {
	return s.solves.List(ctx, limit)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
