// Package starfield models the decorative voyage shown on a ship's detail page:
// a ship cruising along a one-dimensional track, pausing at points of interest.
package starfield

// Speed is the motion state of a voyage
type Speed string

const (
	SpeedMoving  Speed = "moving"
	SpeedStopped Speed = "stopped"
)

// Event is an input to the travel state machine
type Event string

const (
	EventStart   Event = "start"
	EventStop    Event = "stop"
	EventAdvance Event = "advance"
)

// ParseEvent converts user input into a known event
func ParseEvent(s string) (Event, bool) {
	switch e := Event(s); e {
	case EventStart, EventStop, EventAdvance:
		return e, true
	default:
		return "", false
	}
}

// State is the travel state of one voyage.
//
// Invariants:
// - Position is in [0, trackLength)
// - Position only changes through Step with EventAdvance while moving
type State struct {
	Speed    Speed `json:"speed"`
	Position int   `json:"position"`
}

// InitialState is the state of a freshly opened view
func InitialState() State {
	return State{Speed: SpeedMoving, Position: 0}
}

// IsMoving returns true if the voyage is cruising
func (s State) IsMoving() bool {
	return s.Speed == SpeedMoving
}

// Step applies an event to a state and returns the next state.
// It is total: unknown events, and Advance while stopped, return s unchanged.
func Step(s State, e Event, trackLength int) State {
	switch e {
	case EventStart:
		return State{Speed: SpeedMoving, Position: s.Position}
	case EventStop:
		return State{Speed: SpeedStopped, Position: s.Position}
	case EventAdvance:
		if s.Speed != SpeedMoving {
			return s
		}
		next := s.Position + 1
		if trackLength > 0 && next >= trackLength {
			next = 0
		}
		return State{Speed: s.Speed, Position: next}
	default:
		return s
	}
}
