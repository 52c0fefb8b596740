package starfield_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	appstarfield "github.com/andrescamacho/starfleet-go/internal/application/starfield"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

const (
	tick  = 250 * time.Millisecond
	dwell = 3 * time.Second
)

type recordingObserver struct {
	mu       sync.Mutex
	started  []string
	arrivals []starfield.Placement
	ended    []string
}

func (o *recordingObserver) VoyageStarted(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started = append(o.started, id)
}

func (o *recordingObserver) VoyageArrived(id string, p starfield.Placement) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.arrivals = append(o.arrivals, p)
}

func (o *recordingObserver) VoyageEnded(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ended = append(o.ended, id)
}

func (o *recordingObserver) counts() (int, int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.started), len(o.arrivals), len(o.ended)
}

func newTestNavigator(observer appstarfield.Observer) (*appstarfield.Navigator, *shared.MockClock) {
	clock := shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	catalog := starfield.MustNewCatalog([]starfield.Placement{
		{Coordinate: 13, Destination: starfield.Destination{Name: "Moon 42", Symbol: "🌙", Kind: starfield.KindMoon}},
	})
	nav := appstarfield.NewNavigator(appstarfield.Settings{
		Catalog:      catalog,
		Layout:       starfield.DefaultLayout(),
		TickInterval: tick,
		Dwell:        dwell,
	}, clock, observer)
	return nav, clock
}

func nextFrame(t *testing.T, h *appstarfield.Handle) starfield.Frame {
	t.Helper()
	select {
	case f, ok := <-h.Frames():
		require.True(t, ok, "frames closed")
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return starfield.Frame{}
	}
}

func TestNavigator_ArrivesDwellsAndResumes(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	observer := &recordingObserver{}
	nav, clock := newTestNavigator(observer)
	ctx, cancel := context.WithCancel(context.Background())
	owner := shared.GenerateUserID()

	// Act
	h := nav.Launch(ctx, owner)

	// Assert
	initial := nextFrame(t, h)
	assert.Equal(t, 0, initial.Position)
	assert.False(t, initial.Paused())

	clock.Advance(tick)
	assert.Equal(t, 1, nextFrame(t, h).Position)

	clock.Advance(tick)
	assert.Equal(t, 2, nextFrame(t, h).Position)

	clock.Advance(tick)
	arrived := nextFrame(t, h)
	assert.Equal(t, 2, arrived.Position)
	assert.True(t, arrived.Paused())

	clock.Advance(dwell)
	resumed := nextFrame(t, h)
	assert.False(t, resumed.Paused())
	assert.GreaterOrEqual(t, resumed.Position, 2)

	cancel()
	<-h.Done()

	started, arrivals, ended := observer.counts()
	assert.Equal(t, 1, started)
	assert.Equal(t, 1, arrivals)
	assert.Equal(t, 1, ended)
	assert.Zero(t, nav.Active())
	assert.Zero(t, clock.PendingTimers())
}

func TestNavigator_ControlStopAndStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Arrange
	nav, _ := newTestNavigator(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	owner := shared.GenerateUserID()
	h := nav.Launch(ctx, owner)
	nextFrame(t, h)

	// Act & Assert
	require.NoError(t, nav.Control(ctx, owner, h.ID(), starfield.EventStop))
	assert.True(t, nextFrame(t, h).Paused())

	require.NoError(t, nav.Control(ctx, owner, h.ID(), starfield.EventStart))
	assert.False(t, nextFrame(t, h).Paused())

	cancel()
	<-h.Done()
}

func TestNavigator_ControlRejectsForeignAndUnknownVoyages(t *testing.T) {
	defer goleak.VerifyNone(t)

	nav, _ := newTestNavigator(nil)
	ctx, cancel := context.WithCancel(context.Background())
	owner := shared.GenerateUserID()
	h := nav.Launch(ctx, owner)

	err := nav.Control(ctx, shared.GenerateUserID(), h.ID(), starfield.EventStop)
	assert.True(t, shared.IsNotFound(err))

	err = nav.Control(ctx, owner, "no-such-voyage", starfield.EventStop)
	assert.True(t, shared.IsNotFound(err))

	err = nav.Control(ctx, owner, h.ID(), starfield.EventAdvance)
	_, isValidation := shared.AsValidation(err)
	assert.True(t, isValidation)

	cancel()
	<-h.Done()

	err = nav.Control(context.Background(), owner, h.ID(), starfield.EventStart)
	assert.True(t, shared.IsNotFound(err))
}

func TestNavigator_FramesClosedAfterCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	nav, _ := newTestNavigator(nil)
	ctx, cancel := context.WithCancel(context.Background())
	h := nav.Launch(ctx, shared.GenerateUserID())
	assert.Equal(t, 1, nav.Active())

	cancel()
	<-h.Done()

	// drain the initial frame, then the channel reports closed
	for range h.Frames() {
	}
	assert.Zero(t, nav.Active())
}

func TestNavigator_Defaults(t *testing.T) {
	nav := appstarfield.NewNavigator(appstarfield.Settings{}, nil)

	settings := nav.Settings()
	assert.Equal(t, appstarfield.DefaultTickInterval, settings.TickInterval)
	assert.Equal(t, starfield.DefaultDwell, settings.Dwell)
	assert.Equal(t, starfield.DefaultLayout(), settings.Layout)
	assert.Equal(t, 3, settings.Catalog.Len())
}
