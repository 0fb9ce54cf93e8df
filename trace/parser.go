package trace

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// A ParseError describes a malformed trace line. The driver is expected to
// skip the line and continue.
type ParseError struct {
	LineNumber int
	Line       string
	Reason     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace line %d %q: %s", e.LineNumber, e.Line, e.Reason)
}

// ParseLine parses one trace line into an Operation.
func ParseLine(line string) (Operation, error) {
	op := Operation{}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return op, fmt.Errorf("empty line")
	}

	kind, ok := kindFromMnemonic(trimmed[0])
	if !ok {
		return op, fmt.Errorf("unknown operation %q", trimmed[0])
	}
	op.Kind = kind

	fields := strings.Split(trimmed[1:], ",")
	if len(fields) < 2 {
		return op, fmt.Errorf("expected at least an address and a size")
	}

	addrStr := strings.TrimSpace(fields[0])
	addrStr = strings.TrimPrefix(strings.ToLower(addrStr), "0x")
	addr, err := strconv.ParseUint(addrStr, 16, 64)
	if err != nil {
		return op, fmt.Errorf("bad address %q", fields[0])
	}
	op.Address = addr

	size, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return op, fmt.Errorf("bad size %q", fields[1])
	}
	op.Size = size

	if len(fields) >= 3 {
		data, err := hex.DecodeString(strings.TrimSpace(fields[2]))
		if err != nil {
			return op, fmt.Errorf("bad data %q", fields[2])
		}
		op.Data = data
	}

	return op, nil
}

func kindFromMnemonic(c byte) (OpKind, bool) {
	switch c {
	case 'I':
		return OpFetch, true
	case 'L':
		return OpLoad, true
	case 'S':
		return OpStore, true
	case 'M':
		return OpModify, true
	default:
		return 0, false
	}
}
