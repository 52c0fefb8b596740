package starfield

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andrescamacho/starfleet-go/internal/application/common"
	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// DefaultTickInterval is the cadence of Advance ticks
const DefaultTickInterval = 250 * time.Millisecond

// Observer is notified of voyage lifecycle events. Implementations must not block.
type Observer interface {
	VoyageStarted(voyageID string)
	VoyageArrived(voyageID string, arrival starfield.Placement)
	VoyageEnded(voyageID string)
}

// Settings configures every voyage a Navigator launches
type Settings struct {
	Catalog      *starfield.Catalog
	Layout       starfield.Layout
	TickInterval time.Duration
	Dwell        time.Duration
}

// Navigator launches voyages and routes manual control requests to them.
//
// Each voyage runs on its own goroutine which owns the ticker, the resume
// timer and the state. Nothing else touches a voyage: control requests and
// frames travel over channels.
type Navigator struct {
	settings  Settings
	clock     shared.Clock
	observers []Observer

	mu      sync.Mutex
	voyages map[string]*Handle // key: voyage id
}

// NewNavigator creates a navigator. A nil catalog uses the default catalog and
// zero durations use the defaults.
func NewNavigator(settings Settings, clock shared.Clock, observers ...Observer) *Navigator {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if settings.Catalog == nil {
		settings.Catalog = starfield.DefaultCatalog()
	}
	if settings.Layout.VisibleWidth <= 0 {
		settings.Layout = starfield.DefaultLayout()
	}
	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}
	if settings.Dwell <= 0 {
		settings.Dwell = starfield.DefaultDwell
	}
	n := &Navigator{
		settings: settings,
		clock:    clock,
		voyages:  make(map[string]*Handle),
	}
	for _, o := range observers {
		if o != nil {
			n.observers = append(n.observers, o)
		}
	}
	return n
}

// Settings returns the effective settings
func (n *Navigator) Settings() Settings {
	return n.settings
}

// InitialFrame projects the state every voyage starts from
func (n *Navigator) InitialFrame() starfield.Frame {
	return starfield.Project(starfield.InitialState(), n.settings.Catalog, n.settings.Layout)
}

// Handle is the view side of a running voyage
type Handle struct {
	id      string
	ownerID shared.UserID

	frames   chan starfield.Frame
	commands chan starfield.Event
	done     chan struct{}
}

// ID returns the voyage id
func (h *Handle) ID() string { return h.id }

// Frames delivers the latest frame. Slow readers skip intermediate frames.
// The channel is closed when the voyage ends.
func (h *Handle) Frames() <-chan starfield.Frame { return h.frames }

// Done is closed once the voyage has released its timers
func (h *Handle) Done() <-chan struct{} { return h.done }

// Launch starts a voyage for ownerID that runs until ctx is cancelled.
// The initial frame is available on Frames immediately.
func (n *Navigator) Launch(ctx context.Context, ownerID shared.UserID) *Handle {
	h := &Handle{
		id:       uuid.NewString(),
		ownerID:  ownerID,
		frames:   make(chan starfield.Frame, 1),
		commands: make(chan starfield.Event),
		done:     make(chan struct{}),
	}

	voyage := starfield.NewVoyage(n.settings.Catalog, n.settings.Layout, n.settings.Dwell, n.clock)
	ticker := n.clock.NewTicker(n.settings.TickInterval)
	h.publish(voyage.Frame())

	n.mu.Lock()
	n.voyages[h.id] = h
	n.mu.Unlock()

	for _, o := range n.observers {
		o.VoyageStarted(h.id)
	}

	go n.run(ctx, h, voyage, ticker)
	return h
}

// Control applies a manual Start or Stop to a live voyage. Unknown voyages and
// voyages owned by someone else yield a NotFoundError.
func (n *Navigator) Control(ctx context.Context, ownerID shared.UserID, voyageID string, event starfield.Event) error {
	if event != starfield.EventStart && event != starfield.EventStop {
		return shared.NewValidationError("action", fmt.Sprintf("unsupported action %q", event))
	}

	n.mu.Lock()
	h, ok := n.voyages[voyageID]
	n.mu.Unlock()

	if !ok || !h.ownerID.Equals(ownerID) {
		return shared.NewNotFoundError("voyage", voyageID)
	}

	select {
	case h.commands <- event:
		return nil
	case <-h.done:
		return shared.NewNotFoundError("voyage", voyageID)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Active returns the number of running voyages
func (n *Navigator) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.voyages)
}

func (n *Navigator) run(ctx context.Context, h *Handle, voyage *starfield.Voyage, ticker shared.Ticker) {
	logger := common.LoggerFromContext(ctx).With(zap.String("voyage_id", h.id))

	defer func() {
		ticker.Stop()
		voyage.Close()

		n.mu.Lock()
		delete(n.voyages, h.id)
		n.mu.Unlock()

		for _, o := range n.observers {
			o.VoyageEnded(h.id)
		}
		close(h.done)
		close(h.frames)
		logger.Debug("voyage ended")
	}()

	for {
		changed := false

		select {
		case <-ctx.Done():
			return

		case <-ticker.C():
			result := voyage.Tick()
			changed = result.Changed
			if result.Arrival != nil {
				logger.Info("voyage arrived",
					zap.String("destination", result.Arrival.Destination.Name),
					zap.Int("coordinate", result.Arrival.Coordinate))
				for _, o := range n.observers {
					o.VoyageArrived(h.id, *result.Arrival)
				}
			}

		case <-voyage.ResumeC():
			changed = voyage.Resume()

		case event := <-h.commands:
			changed = voyage.Dispatch(event)
			logger.Debug("voyage control", zap.String("event", string(event)))
		}

		if changed {
			h.publish(voyage.Frame())
		}
	}
}

// publish replaces any unread frame with f. Only the voyage goroutine sends.
func (h *Handle) publish(f starfield.Frame) {
	select {
	case h.frames <- f:
		return
	default:
	}
	select {
	case <-h.frames:
	default:
	}
	h.frames <- f
}
