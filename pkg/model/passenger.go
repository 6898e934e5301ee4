package model

// PassengerState is the boarding state machine. Seated is terminal.
type PassengerState int

const (
	StateQueued PassengerState = iota
	StateWalking
	StateStowing
	StateSeated
)

func (s PassengerState) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateWalking:
		return "walking"
	case StateStowing:
		return "stowing"
	default:
		return "seated"
	}
}

// Passenger carries the stochastic attributes sampled per run and the
// mutable per-run simulation state. One passenger maps to exactly one seat.
type Passenger struct {
	ID           int
	Row          int
	Column       int
	WalkingSpeed float64 // rows per second
	LuggageTime  float64 // seconds
	Rank         int     // position in the boarding queue

	State     PassengerState
	Position  float64 // aisle coordinate, 0 is the door
	EntryTime float64 // earliest time this passenger may step through the door
	StowEnd   float64 // absolute time the stow completes
	Shuffling bool    // stow includes a seat shuffle, so the row stays hard to pass
	SeatedAt  float64
}
