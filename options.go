package cubesolver

import "go.uber.org/zap"

// DefaultMaxRotations bounds the number of quarter turns of one solve.
const DefaultMaxRotations = 500

// Option configures a solve.
type Option func(*config)

// PhaseHook is called each time a phase completes, with the number of
// moves recorded so far.
type PhaseHook func(p Phase, rotations int)

type config struct {
	maxRotations int
	logger       *zap.Logger
	phaseHook    PhaseHook
}

func defaultConfig() *config {
	return &config{
		maxRotations: DefaultMaxRotations,
		logger:       zap.NewNop(),
	}
}

// WithMaxRotations sets the rotation fuse. Reaching it fails the solve
// with ErrConvergence. Values below one keep the default.
func WithMaxRotations(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRotations = n
		}
	}
}

// WithLogger sets the logger used for debug traces of the pipeline.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPhaseHook registers a callback for phase completions.
func WithPhaseHook(h PhaseHook) Option {
	return func(c *config) {
		c.phaseHook = h
	}
}
