package storage

import (
	"context"
	"fmt"
)

// PhaseDef describes one solver phase.
type PhaseDef struct {
	PhaseKey    string
	DisplayName string
	OrderIndex  int
	Description *string
}

// PhaseSegment is the run of moves one phase produced: moves
// [StartIndex, EndIndex) of the solve.
type PhaseSegment struct {
	PhaseKey   string
	StartIndex int
	EndIndex   int
}

// MoveCount returns the number of moves in the segment.
func (s PhaseSegment) MoveCount() int {
	return s.EndIndex - s.StartIndex
}

// PhaseRepository provides access to phase definitions and segments.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// GetAllPhaseDefs retrieves all phase definitions in order.
func (r *PhaseRepository) GetAllPhaseDefs(ctx context.Context) ([]PhaseDef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT phase_key, display_name, order_index, description
		FROM phase_defs
		ORDER BY order_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase defs: %w", err)
	}
	defer rows.Close()

	var defs []PhaseDef
	for rows.Next() {
		var d PhaseDef
		if err := rows.Scan(&d.PhaseKey, &d.DisplayName, &d.OrderIndex, &d.Description); err != nil {
			return nil, fmt.Errorf("failed to scan phase def: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// CreateSegments inserts the phase segments of a solve.
func (r *PhaseRepository) CreateSegments(ctx context.Context, ex execer, solveID string, segments []PhaseSegment) error {
	for _, s := range segments {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO phase_segments (solve_id, phase_key, start_index, end_index)
			VALUES (?, ?, ?, ?)
		`, solveID, s.PhaseKey, s.StartIndex, s.EndIndex)
		if err != nil {
			return fmt.Errorf("failed to create phase segment: %w", err)
		}
	}
	return nil
}

// GetSegments retrieves the phase segments of a solve in move order.
func (r *PhaseRepository) GetSegments(ctx context.Context, solveID string) ([]PhaseSegment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT phase_key, start_index, end_index
		FROM phase_segments
		WHERE solve_id = ?
		ORDER BY start_index, segment_id
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase segments: %w", err)
	}
	defer rows.Close()

	var segments []PhaseSegment
	for rows.Next() {
		var s PhaseSegment
		if err := rows.Scan(&s.PhaseKey, &s.StartIndex, &s.EndIndex); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}
