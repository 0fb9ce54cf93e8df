package hierarchy

// An AccessOutcome records what happened during one protocol invocation. It is
// consumed by logging and recording and holds no state between operations.
type AccessOutcome struct {
	L1Cache string
	L1SetID int
	L2SetID int

	L1Hit     bool
	L1Miss    bool
	L1Evicted bool

	L2Hit     bool
	L2Miss    bool
	L2Evicted bool

	PlacedInL1   bool
	PlacedInL2   bool
	WroteToStore bool
}
