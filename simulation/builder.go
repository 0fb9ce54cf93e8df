package simulation

import (
	"io"

	"github.com/rs/xid"

	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/record"
)

// A Builder can build simulations.
type Builder struct {
	hierarchy *hierarchy.Hierarchy
	recorder  record.Recorder
	logWriter io.Writer
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithHierarchy sets the hierarchy the simulation replays into.
func (b Builder) WithHierarchy(h *hierarchy.Hierarchy) Builder {
	b.hierarchy = h
	return b
}

// WithRecorder sets the recorder that persists per-operation outcomes.
func (b Builder) WithRecorder(r record.Recorder) Builder {
	b.recorder = r
	return b
}

// WithOpLog enables per-operation logging to w.
func (b Builder) WithOpLog(w io.Writer) Builder {
	b.logWriter = w
	return b
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	if b.hierarchy == nil {
		panic("simulation requires a hierarchy")
	}

	s := &Simulation{
		id:        xid.New().String(),
		hierarchy: b.hierarchy,
		recorder:  b.recorder,
	}

	if b.logWriter != nil {
		s.logger = NewOpLogger(b.logWriter)
	}

	return s
}
