package starfield_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

const dwell = 3 * time.Second

func rockAt(coordinate int) *starfield.Catalog {
	return starfield.MustNewCatalog([]starfield.Placement{
		{Coordinate: coordinate, Destination: starfield.Destination{Name: "Rock", Symbol: "☄️", Kind: starfield.KindAsteroid}},
	})
}

func newTestVoyage(catalog *starfield.Catalog) (*starfield.Voyage, *shared.MockClock) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return starfield.NewVoyage(catalog, starfield.DefaultLayout(), dwell, clock), clock
}

func fired(c <-chan time.Time) bool {
	select {
	case <-c:
		return true
	default:
		return false
	}
}

func TestDecide_AdvanceWhenNothingAhead(t *testing.T) {
	event, arrival := starfield.Decide(starfield.InitialState(), rockAt(30), starfield.DefaultLayout())

	assert.Equal(t, starfield.EventAdvance, event)
	assert.Nil(t, arrival)
}

func TestDecide_StopWhenDestinationOneCellAhead(t *testing.T) {
	event, arrival := starfield.Decide(starfield.InitialState(), rockAt(11), starfield.DefaultLayout())

	assert.Equal(t, starfield.EventStop, event)
	require.NotNil(t, arrival)
	assert.Equal(t, 11, arrival.Coordinate)
	assert.Equal(t, "Rock", arrival.Destination.Name)
}

func TestDecide_StoppedAlwaysAdvance(t *testing.T) {
	s := starfield.State{Speed: starfield.SpeedStopped}

	event, arrival := starfield.Decide(s, rockAt(11), starfield.DefaultLayout())

	assert.Equal(t, starfield.EventAdvance, event)
	assert.Nil(t, arrival)
}

func TestVoyage_TickAdvancesWhenClear(t *testing.T) {
	v, clock := newTestVoyage(rockAt(30))

	result := v.Tick()

	assert.Equal(t, starfield.EventAdvance, result.Event)
	assert.True(t, result.Changed)
	assert.Equal(t, starfield.State{Speed: starfield.SpeedMoving, Position: 1}, v.State())
	assert.False(t, v.ResumePending())
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestVoyage_ArrivalStopsAndResumesAfterDwell(t *testing.T) {
	// Arrange: destination at 11, player offset 10
	v, clock := newTestVoyage(rockAt(11))

	// Act: tick
	result := v.Tick()

	// Assert: stopped in place with exactly one resume timer
	assert.Equal(t, starfield.EventStop, result.Event)
	require.NotNil(t, result.Arrival)
	assert.Equal(t, starfield.State{Speed: starfield.SpeedStopped, Position: 0}, v.State())
	assert.True(t, v.ResumePending())
	assert.Equal(t, 1, clock.PendingTimers())

	// Act: dwell elapses with no manual intervention
	clock.Advance(dwell - time.Millisecond)
	assert.False(t, fired(v.ResumeC()))
	clock.Advance(time.Millisecond)
	require.True(t, fired(v.ResumeC()))
	assert.True(t, v.Resume())

	// Assert
	assert.Equal(t, starfield.State{Speed: starfield.SpeedMoving, Position: 0}, v.State())
	assert.False(t, v.ResumePending())
}

func TestVoyage_DepartsAfterDwellInsteadOfRedocking(t *testing.T) {
	v, clock := newTestVoyage(rockAt(11))
	v.Tick()
	clock.Advance(dwell)
	require.True(t, fired(v.ResumeC()))
	v.Resume()

	result := v.Tick()

	assert.Equal(t, starfield.EventAdvance, result.Event)
	assert.Equal(t, 1, v.State().Position)

	// and the next destination check runs normally again
	for i := 0; i < 50 && v.State().IsMoving(); i++ {
		v.Tick()
	}
	// one lap later the rock is ahead again at position 0
	assert.Equal(t, starfield.SpeedStopped, v.State().Speed)
	assert.Equal(t, 0, v.State().Position)
}

func TestVoyage_TicksWhileStoppedAreIgnored(t *testing.T) {
	v, _ := newTestVoyage(rockAt(11))
	v.Tick()

	for i := 0; i < 5; i++ {
		result := v.Tick()
		assert.False(t, result.Changed)
	}

	assert.Equal(t, starfield.State{Speed: starfield.SpeedStopped, Position: 0}, v.State())
	assert.True(t, v.ResumePending())
}

func TestVoyage_ManualStartCancelsResumeTimer(t *testing.T) {
	// Arrange
	v, clock := newTestVoyage(rockAt(11))
	v.Tick()
	timerC := v.ResumeC()

	// Act
	changed := v.Dispatch(starfield.EventStart)

	// Assert
	assert.True(t, changed)
	assert.False(t, v.ResumePending())
	assert.Nil(t, v.ResumeC())
	assert.Equal(t, 0, clock.PendingTimers())

	clock.Advance(dwell)
	assert.False(t, fired(timerC), "cancelled timer must not fire")
}

func TestVoyage_ResumeWhileMovingIsDiscarded(t *testing.T) {
	v, _ := newTestVoyage(rockAt(30))

	assert.False(t, v.Resume())
	assert.Equal(t, starfield.InitialState(), v.State())
}

func TestVoyage_ManualStopDuringDwellHolds(t *testing.T) {
	v, clock := newTestVoyage(rockAt(11))
	v.Tick()

	v.Dispatch(starfield.EventStop)
	clock.Advance(dwell * 2)

	assert.False(t, v.ResumePending())
	assert.Equal(t, starfield.SpeedStopped, v.State().Speed)

	v.Dispatch(starfield.EventStart)
	v.Tick()
	assert.Equal(t, starfield.State{Speed: starfield.SpeedMoving, Position: 1}, v.State())
}

func TestVoyage_NewArrivalArmsFreshTimer(t *testing.T) {
	catalog := starfield.MustNewCatalog([]starfield.Placement{
		{Coordinate: 11, Destination: starfield.Destination{Name: "A", Symbol: "A", Kind: starfield.KindHome}},
		{Coordinate: 12, Destination: starfield.Destination{Name: "B", Symbol: "B", Kind: starfield.KindMoon}},
	})
	v, clock := newTestVoyage(catalog)

	v.Tick()                         // arrive at A
	v.Dispatch(starfield.EventStart) // manual resume cancels A's timer
	v.Tick()                         // depart, position 1
	result := v.Tick()               // B is one cell ahead of the player

	require.NotNil(t, result.Arrival)
	assert.Equal(t, "B", result.Arrival.Destination.Name)
	assert.Equal(t, 1, clock.PendingTimers())
}

func TestVoyage_CloseReleasesTimer(t *testing.T) {
	v, clock := newTestVoyage(rockAt(11))
	v.Tick()

	v.Close()
	v.Close()

	assert.False(t, v.ResumePending())
	assert.Equal(t, 0, clock.PendingTimers())
}

func TestVoyage_FrameReflectsState(t *testing.T) {
	v, _ := newTestVoyage(rockAt(11))
	v.Tick()

	frame := v.Frame()

	assert.True(t, frame.Cells[starfield.DefaultLayout().PlayerOffset].Paused)
	assert.Equal(t, "Rock", frame.Cells[11].Name)
}
