package cubesolver

// Completion predicates for each phase. They read the grid only and use
// the cube's own centers, so they hold for any color scheme.

// IsDaisyComplete reports whether all four Bottom colored edges sit
// around the Top center with the Bottom color facing up.
func (c *Cube) IsDaisyComplete() bool {
	target := c.Center(Bottom)
	for _, f := range sideFaces {
		if c.At(topEdges[f][0]) != target {
			return false
		}
	}
	return true
}

// IsCrossComplete reports whether the four Bottom edges are placed and
// match the side centers.
func (c *Cube) IsCrossComplete() bool {
	for _, f := range sideFaces {
		if !c.slotSolved(bottomEdges[f][:]) {
			return false
		}
	}
	return true
}

// IsFirstLayerComplete reports whether the Bottom face and the bottom
// row of every side face match their centers.
func (c *Cube) IsFirstLayerComplete() bool {
	if !c.IsCrossComplete() {
		return false
	}
	for _, f := range sideFaces {
		if !c.slotSolved(bottomCorners[f][:]) {
			return false
		}
	}
	return true
}

// IsSecondLayerComplete reports whether the first layer is done and every
// middle layer edge matches its centers.
func (c *Cube) IsSecondLayerComplete() bool {
	if !c.IsFirstLayerComplete() {
		return false
	}
	_, found := c.FirstUnsolvedSecondLayerEdge()
	return !found
}

// IsTopCrossComplete reports whether the four Top edge stickers show the
// Top color.
func (c *Cube) IsTopCrossComplete() bool {
	return len(c.orientedTopEdges()) == 4
}

// AreTopEdgesPermuted reports whether every Top edge matches its side
// center.
func (c *Cube) AreTopEdgesPermuted() bool {
	return len(c.matchedTopEdges()) == 4
}

// AreTopCornersPositioned reports whether every Top corner sits in its
// slot, ignoring twist.
func (c *Cube) AreTopCornersPositioned() bool {
	return len(c.positionedTopCorners()) == 4
}

// slotSolved reports whether every sticker of a slot matches its center.
func (c *Cube) slotSolved(slot []Piece) bool {
	for _, p := range slot {
		if c.At(p) != c.Center(p.Face) {
			return false
		}
	}
	return true
}

// DetectPhase returns the phase the pipeline would work on for the
// current state.
func (c *Cube) DetectPhase() Phase {
	switch {
	case c.IsSolved():
		return PhaseSolved
	case c.IsSecondLayerComplete() && c.IsTopCrossComplete():
		return PhaseLastLayerPermutation
	case c.IsSecondLayerComplete():
		return PhaseLastLayerOrientation
	case c.IsFirstLayerComplete():
		return PhaseSecondLayerEdges
	case c.IsCrossComplete():
		return PhaseFirstLayerCorners
	case c.IsDaisyComplete():
		return PhaseCrossCenterAlignment
	default:
		return PhaseCrossEdges
	}
}

// Progress records which milestones a state has reached.
type Progress struct {
	Daisy              bool
	Cross              bool
	FirstLayer         bool
	SecondLayer        bool
	TopCross           bool
	TopEdgesPermuted   bool
	TopCornersPosition bool
	Solved             bool
}

// GetProgress returns the milestones of the current state.
func (c *Cube) GetProgress() Progress {
	return Progress{
		Daisy:              c.IsDaisyComplete(),
		Cross:              c.IsCrossComplete(),
		FirstLayer:         c.IsFirstLayerComplete(),
		SecondLayer:        c.IsSecondLayerComplete(),
		TopCross:           c.IsTopCrossComplete(),
		TopEdgesPermuted:   c.AreTopEdgesPermuted(),
		TopCornersPosition: c.AreTopCornersPositioned(),
		Solved:             c.IsSolved(),
	}
}
