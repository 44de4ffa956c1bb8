// Package analysis computes statistics over solutions: moves per phase,
// how much compaction saves, which layers are turned, and the move
// sequences the solver repeats.
package analysis

import (
	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
)

// Report holds the statistics for one solution.
type Report struct {
	TotalMoves   int     `json:"total_moves"`
	CompactSteps int     `json:"compact_steps"`
	Efficiency   float64 `json:"efficiency"`

	Phases        []PhaseStats    `json:"phases"`
	LayerCounts   map[string]int  `json:"layer_counts"`
	MostUsedLayer string          `json:"most_used_layer,omitempty"`
	Cancellations []Cancellation  `json:"cancellations"`
	Merges        []Merge         `json:"merges"`
	NGrams        map[int][]NGram `json:"ngrams,omitempty"`
}

// PhaseStats is the share of the solution one phase produced.
type PhaseStats struct {
	Phase       string  `json:"phase"`
	DisplayName string  `json:"display_name"`
	MoveCount   int     `json:"move_count"`
	Share       float64 `json:"share"`
	Compact     string  `json:"compact"`
}

// Cancellation is a move directly followed by its inverse.
type Cancellation struct {
	Index int    `json:"index"`
	Moves string `json:"moves"`
}

// Merge is a run of the same quarter turn that notation folds into one
// step, e.g. U U -> U2.
type Merge struct {
	Index  int    `json:"index"`
	Length int    `json:"length"`
	Step   string `json:"step"`
}

// Options bound the n-gram search.
type Options struct {
	MinN, MaxN, TopK int
}

// DefaultOptions mine sequences of 4 to 8 moves, 5 per length.
var DefaultOptions = Options{MinN: 4, MaxN: 8, TopK: 5}

// Analyze builds the report for sol.
func Analyze(sol *cubesolver.Solution, opts Options) *Report {
	moves := sol.Moves
	steps := notation.Compact(moves)

	r := &Report{
		TotalMoves:    len(moves),
		CompactSteps:  len(steps),
		LayerCounts:   make(map[string]int),
		Cancellations: []Cancellation{},
		Merges:        []Merge{},
	}
	if len(moves) > 0 {
		r.Efficiency = float64(len(steps)) / float64(len(moves))
	}

	for _, seg := range sol.Segments {
		phaseMoves := moves[seg.Start:seg.End]
		ps := PhaseStats{
			Phase:       seg.Phase.String(),
			DisplayName: seg.Phase.DisplayName(),
			MoveCount:   len(phaseMoves),
			Compact:     notation.CompactString(phaseMoves),
		}
		if len(moves) > 0 {
			ps.Share = float64(len(phaseMoves)) / float64(len(moves))
		}
		r.Phases = append(r.Phases, ps)
	}

	best := 0
	for _, m := range moves {
		l := string(m.Layer)
		r.LayerCounts[l]++
		if r.LayerCounts[l] > best || (r.LayerCounts[l] == best && l < r.MostUsedLayer) {
			best = r.LayerCounts[l]
			r.MostUsedLayer = l
		}
	}

	for i := 0; i+1 < len(moves); i++ {
		if moves[i+1] == moves[i].Inverse() {
			r.Cancellations = append(r.Cancellations, Cancellation{
				Index: i,
				Moves: cubesolver.FormatMoves(moves[i : i+2]),
			})
		}
	}

	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		if n := j - i; n > 1 {
			for _, st := range notation.Compact(moves[i:j]) {
				r.Merges = append(r.Merges, Merge{Index: i, Length: n, Step: st.Notation()})
			}
		}
		i = j
	}

	if opts.MaxN > 0 {
		r.NGrams = MineNGrams(moves, opts.MinN, opts.MaxN, opts.TopK)
	}
	return r
}
