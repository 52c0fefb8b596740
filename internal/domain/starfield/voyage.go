package starfield

import (
	"time"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
)

// DefaultDwell is how long a voyage pauses at a destination
const DefaultDwell = 3 * time.Second

// Decide picks the event a tick produces for s: Stop when a destination sits
// one cell ahead of the player marker, Advance otherwise. Advance is also
// returned while stopped, where Step treats it as a no-op.
func Decide(s State, catalog *Catalog, layout Layout) (Event, *Placement) {
	if !s.IsMoving() {
		return EventAdvance, nil
	}

	ahead := layout.Wrap(s.Position + layout.PlayerOffset + 1)
	if d, ok := catalog.At(ahead); ok {
		return EventStop, &Placement{Coordinate: ahead, Destination: d}
	}
	return EventAdvance, nil
}

// TickResult describes what one tick did
type TickResult struct {
	Event   Event
	Arrival *Placement
	Changed bool
}

// Voyage drives the travel state machine for one view and owns its resume
// timer. It is not safe for concurrent use; a single loop feeds it events.
//
// Invariants:
// - At most one resume timer is armed, and only while stopped
// - Any transition out of stopped releases the resume timer
type Voyage struct {
	catalog *Catalog
	layout  Layout
	dwell   time.Duration
	clock   shared.Clock

	state  State
	resume shared.Timer
	// docked is set on arrival so the first tick after resuming departs
	// instead of stopping at the same destination again
	docked bool
}

// NewVoyage creates a voyage in the initial state
func NewVoyage(catalog *Catalog, layout Layout, dwell time.Duration, clock shared.Clock) *Voyage {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if dwell <= 0 {
		dwell = DefaultDwell
	}
	return &Voyage{
		catalog: catalog,
		layout:  layout,
		dwell:   dwell,
		clock:   clock,
		state:   InitialState(),
	}
}

// State returns the current state
func (v *Voyage) State() State {
	return v.state
}

// Frame projects the current state
func (v *Voyage) Frame() Frame {
	return Project(v.state, v.catalog, v.layout)
}

// ResumePending reports whether a resume timer is armed
func (v *Voyage) ResumePending() bool {
	return v.resume != nil
}

// ResumeC returns the armed resume timer's channel, or nil when none is armed.
// A nil channel never becomes ready in a select.
func (v *Voyage) ResumeC() <-chan time.Time {
	if v.resume == nil {
		return nil
	}
	return v.resume.C()
}

// Tick handles one periodic tick
func (v *Voyage) Tick() TickResult {
	event, arrival := Decide(v.state, v.catalog, v.layout)
	if v.docked && v.state.IsMoving() {
		event, arrival = EventAdvance, nil
		v.docked = false
	}

	prev := v.state
	v.state = Step(v.state, event, v.layout.TrackLength())

	if arrival != nil {
		v.docked = true
		v.armResume()
	}

	return TickResult{Event: event, Arrival: arrival, Changed: v.state != prev}
}

// Resume handles the resume timer firing. A timer that finds the voyage
// already moving is discarded.
func (v *Voyage) Resume() bool {
	v.resume = nil
	if v.state.IsMoving() {
		return false
	}
	v.state = Step(v.state, EventStart, v.layout.TrackLength())
	return true
}

// Dispatch applies a manually requested event. Manual Start and Stop both
// release any pending resume: a manual stop holds until a manual start.
func (v *Voyage) Dispatch(e Event) bool {
	if e == EventStart || e == EventStop {
		v.cancelResume()
	}
	prev := v.state
	v.state = Step(v.state, e, v.layout.TrackLength())
	return v.state != prev
}

// Close releases the resume timer. It is safe to call more than once.
func (v *Voyage) Close() {
	v.cancelResume()
}

func (v *Voyage) armResume() {
	v.cancelResume()
	v.resume = v.clock.NewTimer(v.dwell)
}

func (v *Voyage) cancelResume() {
	if v.resume != nil {
		v.resume.Stop()
		v.resume = nil
	}
}
