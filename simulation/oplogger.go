package simulation

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sarchlab/cachesim/hierarchy"
	"github.com/sarchlab/cachesim/trace"
)

// An OpLogger writes one human-readable stanza per operation: the trace line
// echoed back, the per-level hit/miss results, and the placement or
// store action taken.
type OpLogger struct {
	w io.Writer

	hitColor  *color.Color
	missColor *color.Color
}

// NewOpLogger creates a logger writing to w. Colors are stripped
// automatically when w is not a terminal.
func NewOpLogger(w io.Writer) *OpLogger {
	return &OpLogger{
		w:         w,
		hitColor:  color.New(color.FgGreen),
		missColor: color.New(color.FgRed),
	}
}

// LogOperation writes the stanza for one operation. A modify passes two
// outcomes: its load phase and its store phase.
func (l *OpLogger) LogOperation(
	op trace.Operation,
	outcomes []hierarchy.AccessOutcome,
) {
	fmt.Fprintf(l.w, "\n%s\n", l.formatHeader(op))

	first := outcomes[0]
	if result := l.formatResult(first); result != "" {
		fmt.Fprintf(l.w, "  %s\n", result)
	}

	last := outcomes[len(outcomes)-1]
	if action := formatAction(op, last); action != "" {
		fmt.Fprintf(l.w, "  %s\n", action)
	}
}

func (l *OpLogger) formatHeader(op trace.Operation) string {
	header := fmt.Sprintf("%s %x, %d", op.Kind, op.Address, op.Size)
	if op.Kind == trace.OpStore || op.Kind == trace.OpModify {
		header += ", " + hex.EncodeToString(op.Data)
	}

	return header
}

func (l *OpLogger) formatResult(outcome hierarchy.AccessOutcome) string {
	result := ""

	switch {
	case outcome.L1Hit:
		result = l.hitColor.Sprintf("%s hit", outcome.L1Cache)
	case outcome.L1Miss:
		result = l.missColor.Sprintf("%s miss", outcome.L1Cache)
	}

	l2Result := ""
	switch {
	case outcome.L2Hit:
		l2Result = l.hitColor.Sprint("L2 hit")
	case outcome.L2Miss:
		l2Result = l.missColor.Sprint("L2 miss")
	}

	if result != "" && l2Result != "" {
		return result + ", " + l2Result
	}

	return result + l2Result
}

func formatAction(op trace.Operation, outcome hierarchy.AccessOutcome) string {
	if op.Kind == trace.OpLoad || op.Kind == trace.OpFetch {
		switch {
		case outcome.PlacedInL1:
			return "Place in " + outcome.L1Cache
		case outcome.PlacedInL2:
			return "Place in L2"
		default:
			return ""
		}
	}

	switch {
	case outcome.L1Hit && outcome.L2Hit && outcome.WroteToStore:
		return "Store in " + outcome.L1Cache + ", L2, RAM"
	case outcome.L2Hit && outcome.WroteToStore:
		return "Store in L2, RAM"
	case outcome.WroteToStore:
		return "Store in RAM"
	default:
		return ""
	}
}
