// Package trace parses memory-operation traces. Each line of a trace is one
// operation in the form
//
//	OP address, size[, data]
//
// where OP is I (instruction fetch), L (load), S (store), or M (modify), the
// address is hexadecimal, and data is a string of hex digit pairs that encode
// the store payload.
package trace

// An OpKind identifies the kind of a memory operation.
type OpKind int

// The operation kinds that can appear in a trace.
const (
	OpFetch OpKind = iota
	OpLoad
	OpStore
	OpModify
)

// String returns the trace mnemonic of the kind.
func (k OpKind) String() string {
	switch k {
	case OpFetch:
		return "I"
	case OpLoad:
		return "L"
	case OpStore:
		return "S"
	case OpModify:
		return "M"
	default:
		return "?"
	}
}

// An Operation is one parsed trace record. Data is nil for fetches and loads.
type Operation struct {
	Kind    OpKind
	Address uint64
	Size    int
	Data    []byte
}
