package terminal

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// chanSource replays frames sent on its channel and ends with err once closed
type chanSource struct {
	frames chan starfield.Frame
	err    error
}

func (s *chanSource) Next() (starfield.Frame, error) {
	f, ok := <-s.frames
	if !ok {
		if s.err != nil {
			return starfield.Frame{}, s.err
		}
		return starfield.Frame{}, io.EOF
	}
	return f, nil
}

type recordingControl struct {
	mu     sync.Mutex
	events []starfield.Event
}

func (c *recordingControl) apply(_ context.Context, e starfield.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *recordingControl) recorded() []starfield.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]starfield.Event(nil), c.events...)
}

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func frameAt(s starfield.State) starfield.Frame {
	return starfield.Project(s, starfield.DefaultCatalog(), starfield.DefaultLayout())
}

// rowText returns the runes drawn on row y
func rowText(screen tcell.SimulationScreen, y int) string {
	cells, width, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) > 0 {
			b.WriteString(string(c.Runes))
		}
	}
	return b.String()
}

func runViewer(ctx context.Context, v *Viewer, source FrameSource, control ControlFunc) <-chan error {
	done := make(chan error, 1)
	go func() { done <- v.Run(ctx, source, control) }()
	return done
}

func TestViewerDrawsFramesAndTogglesWithSpace(t *testing.T) {
	// Arrange
	screen := newScreen(t)
	source := &chanSource{frames: make(chan starfield.Frame)}
	control := &recordingControl{}
	viewer := NewViewer(screen, "Banjo Fett")

	done := runViewer(context.Background(), viewer, source, control.apply)

	// Act
	source.frames <- frameAt(starfield.InitialState())
	require.Eventually(t, func() bool {
		return strings.Contains(rowText(screen, statusRow), statusMoving)
	}, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	require.Eventually(t, func() bool { return len(control.recorded()) == 1 }, time.Second, 5*time.Millisecond)

	source.frames <- frameAt(starfield.State{Speed: starfield.SpeedStopped, Position: 0})
	require.Eventually(t, func() bool {
		return strings.Contains(rowText(screen, statusRow), statusStopped)
	}, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	require.Eventually(t, func() bool { return len(control.recorded()) == 2 }, time.Second, 5*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	// Assert
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("viewer did not quit")
	}
	assert.Equal(t, []starfield.Event{starfield.EventStop, starfield.EventStart}, control.recorded())
	assert.Contains(t, rowText(screen, 0), "Banjo Fett")
	assert.Contains(t, rowText(screen, fieldRow), starfield.PlayerGlyph)
}

func TestViewerIgnoresSpaceBeforeFirstFrame(t *testing.T) {
	screen := newScreen(t)
	source := &chanSource{frames: make(chan starfield.Frame)}
	control := &recordingControl{}

	done := runViewer(context.Background(), NewViewer(screen, "PhazBar"), source, control.apply)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	require.NoError(t, <-done)
	assert.Empty(t, control.recorded())
}

func TestViewerEndsWithSource(t *testing.T) {
	tests := []struct {
		name      string
		sourceErr error
		wantErr   bool
	}{
		{name: "voyage ended", sourceErr: nil, wantErr: false},
		{name: "transport failure", sourceErr: errors.New("daemon went away"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := newScreen(t)
			source := &chanSource{frames: make(chan starfield.Frame), err: tt.sourceErr}

			done := runViewer(context.Background(), NewViewer(screen, "x"), source, (&recordingControl{}).apply)
			close(source.frames)

			err := <-done
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.sourceErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestViewerStopsWhenContextCancelled(t *testing.T) {
	screen := newScreen(t)
	source := &chanSource{frames: make(chan starfield.Frame)}
	ctx, cancel := context.WithCancel(context.Background())

	done := runViewer(ctx, NewViewer(screen, "x"), source, (&recordingControl{}).apply)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("viewer ignored cancellation")
	}
}
