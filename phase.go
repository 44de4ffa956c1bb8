package cubesolver

// Phase is a stage of the layer-by-layer pipeline. Phases run in order
// from PhaseCrossEdges to PhaseSolved and can be compared with < and >.
type Phase int

const (
	// PhaseCrossEdges gathers the four Bottom colored edges around the
	// Top center (the daisy).
	PhaseCrossEdges Phase = iota

	// PhaseCrossCenterAlignment drops each daisy edge onto Bottom below
	// the face whose center matches its side sticker.
	PhaseCrossCenterAlignment

	// PhaseFirstLayerCorners inserts the four Bottom corners.
	PhaseFirstLayerCorners

	// PhaseSecondLayerEdges inserts the four middle layer edges.
	PhaseSecondLayerEdges

	// PhaseLastLayerOrientation builds the plus on Top.
	PhaseLastLayerOrientation

	// PhaseLastLayerPermutation places the Top edges and corners and
	// twists the corners.
	PhaseLastLayerPermutation

	// PhaseSolved is terminal.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCrossEdges:
		return "cross_edges"
	case PhaseCrossCenterAlignment:
		return "cross_center_alignment"
	case PhaseFirstLayerCorners:
		return "first_layer_corners"
	case PhaseSecondLayerEdges:
		return "second_layer_edges"
	case PhaseLastLayerOrientation:
		return "last_layer_orientation"
	case PhaseLastLayerPermutation:
		return "last_layer_permutation"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseCrossEdges:
		return "Daisy"
	case PhaseCrossCenterAlignment:
		return "Cross"
	case PhaseFirstLayerCorners:
		return "First Layer Corners"
	case PhaseSecondLayerEdges:
		return "Second Layer Edges"
	case PhaseLastLayerOrientation:
		return "Last Layer Cross"
	case PhaseLastLayerPermutation:
		return "Last Layer Permutation"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// ParsePhase returns the phase whose String is s.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseCrossEdges; p <= PhaseSolved; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// Phases lists every phase in pipeline order.
func Phases() []Phase {
	return []Phase{
		PhaseCrossEdges,
		PhaseCrossCenterAlignment,
		PhaseFirstLayerCorners,
		PhaseSecondLayerEdges,
		PhaseLastLayerOrientation,
		PhaseLastLayerPermutation,
		PhaseSolved,
	}
}
