// Package simulation replays a parsed trace through a cache hierarchy,
// logging and recording the outcome of every operation.
package simulation

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/record"
	"github.com/sarchlab/cachesim/trace"
)

// A Simulation owns one replay: the hierarchy, an optional per-operation
// logger, and an optional outcome recorder. Operations are applied strictly
// in trace order, one at a time.
type Simulation struct {
	id string

	hierarchy *hierarchy.Hierarchy
	logger    *OpLogger
	recorder  record.Recorder

	numOps      int
	numSkipped  int
	numRecorded int
}

// ID returns the simulation ID.
func (s *Simulation) ID() string { return s.id }

// Hierarchy returns the hierarchy the simulation replays into.
func (s *Simulation) Hierarchy() *hierarchy.Hierarchy { return s.hierarchy }

// NumOps returns the number of operations applied so far.
func (s *Simulation) NumOps() int { return s.numOps }

// NumSkipped returns the number of malformed trace lines skipped so far.
func (s *Simulation) NumSkipped() int { return s.numSkipped }

// NumRecorded returns the number of outcome records handed to the recorder so
// far. A modify contributes two records, so this can exceed NumOps.
func (s *Simulation) NumRecorded() int { return s.numRecorded }

// Run replays the whole trace. Malformed lines are skipped with a warning;
// any other error is fatal for the run and returned immediately, with no
// operation left partially applied.
func (s *Simulation) Run(r *trace.Reader) error {
	for {
		op, err := r.Next()

		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *trace.ParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintf(os.Stderr, "Skipping malformed %s\n", parseErr)
			s.numSkipped++
			continue
		}

		if err != nil {
			return err
		}

		if err := s.apply(op); err != nil {
			return err
		}
	}

	if s.recorder != nil {
		s.recorder.Flush()
	}

	return nil
}

func (s *Simulation) apply(op trace.Operation) error {
	s.numOps++

	var outcomes []hierarchy.AccessOutcome
	var phases []string
	var err error

	switch op.Kind {
	case trace.OpFetch:
		var outcome hierarchy.AccessOutcome
		outcome, err = s.hierarchy.Fetch(op.Address)
		outcomes, phases = []hierarchy.AccessOutcome{outcome}, []string{"load"}
	case trace.OpLoad:
		var outcome hierarchy.AccessOutcome
		outcome, err = s.hierarchy.Load(op.Address)
		outcomes, phases = []hierarchy.AccessOutcome{outcome}, []string{"load"}
	case trace.OpStore:
		var outcome hierarchy.AccessOutcome
		outcome, err = s.hierarchy.Store(op.Address, op.Data)
		outcomes, phases = []hierarchy.AccessOutcome{outcome}, []string{"store"}
	case trace.OpModify:
		var loadOutcome, storeOutcome hierarchy.AccessOutcome
		loadOutcome, storeOutcome, err = s.hierarchy.Modify(op.Address, op.Data)
		outcomes = []hierarchy.AccessOutcome{loadOutcome, storeOutcome}
		phases = []string{"load", "store"}
	default:
		panic(fmt.Sprintf("unknown operation kind %d", op.Kind))
	}

	if err != nil {
		return fmt.Errorf("applying operation %d: %w", s.numOps, err)
	}

	if s.logger != nil {
		s.logger.LogOperation(op, outcomes)
	}

	if s.recorder != nil {
		for i, outcome := range outcomes {
			s.recordOutcome(op, phases[i], outcome)
		}
	}

	return nil
}

func (s *Simulation) recordOutcome(
	op trace.Operation,
	phase string,
	outcome hierarchy.AccessOutcome,
) {
	s.numRecorded++

	s.recorder.Record(record.OutcomeRecord{
		Seq:     s.numOps,
		Kind:    op.Kind.String(),
		Phase:   phase,
		Address: op.Address,
		Size:    op.Size,

		L1Cache:   outcome.L1Cache,
		L1SetID:   outcome.L1SetID,
		L1Hit:     outcome.L1Hit,
		L1Miss:    outcome.L1Miss,
		L1Evicted: outcome.L1Evicted,

		L2SetID:   outcome.L2SetID,
		L2Hit:     outcome.L2Hit,
		L2Miss:    outcome.L2Miss,
		L2Evicted: outcome.L2Evicted,

		PlacedInL1:   outcome.PlacedInL1,
		PlacedInL2:   outcome.PlacedInL2,
		WroteToStore: outcome.WroteToStore,
	})
}
