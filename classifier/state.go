package classifier

import "time"

// State is the classifier's active state. Exactly one state is active per
// Classifier at all times; there is no terminal state.
type State int

const (
	// StateIdle is the baseline state awaiting a qualifying sample
	StateIdle State = iota
	// StateEntry is the admission state after a sample clears the floor
	StateEntry
	// StateFlash is a one-tick marker for high-magnitude bursts
	StateFlash
	// StateEncode is the encode attempt state
	StateEncode
	// StateBackground counts qualifying events inside the immune window
	StateBackground
	// StateImmune suppresses re-encoding while the window stays open
	StateImmune
	// StateError is the transient failure state; it resets to Idle
	StateError
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEntry:
		return "entry"
	case StateFlash:
		return "flash"
	case StateEncode:
		return "encode"
	case StateBackground:
		return "background"
	case StateImmune:
		return "immune"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// EncodedVectorLen is the fixed length of a packet's encoded vector.
const EncodedVectorLen = 128

// Packet is the classifier's live working record, mutated in place on each
// transition. ID and EncodedVector are only populated on a successful
// encode. Callers receive a reference to the live packet: treat it as a
// read-only view valid until the next Process call.
type Packet struct {
	State         State
	Magnitude     float64
	Timestamp     time.Time
	ID            string
	EncodedVector []float64
	IsEncoded     bool
	ImmuneCounter uint32
}
