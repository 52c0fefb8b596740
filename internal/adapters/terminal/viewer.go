package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// FrameSource yields frames of a running voyage. Next returns io.EOF when the voyage ends.
type FrameSource interface {
	Next() (starfield.Frame, error)
}

// ControlFunc applies a manual start or stop to the voyage being viewed
type ControlFunc func(ctx context.Context, event starfield.Event) error

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	fieldStyle  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	pausedStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange).Dim(true)
	helpStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

const (
	fieldRow  = 2
	statusRow = 4
	helpRow   = 6

	helpText      = "[space] start/stop   [q] quit"
	statusMoving  = "Moving"
	statusStopped = "Stopped"
)

// frameUpdate and sourceDone travel to the UI loop as interrupt payloads
type frameUpdate struct{ frame starfield.Frame }
type sourceDone struct{ err error }

// Viewer draws a starfield voyage on a terminal screen.
// Space toggles Start and Stop, q or Escape quits.
type Viewer struct {
	screen tcell.Screen
	title  string

	frame    starfield.Frame
	hasFrame bool
	lastErr  error
}

// NewViewer creates a viewer on an initialized screen. The caller owns the screen.
func NewViewer(screen tcell.Screen, title string) *Viewer {
	return &Viewer{screen: screen, title: title}
}

// Run draws frames from source until the user quits, the source ends, or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context, source FrameSource, control ControlFunc) error {
	go v.pump(source)

	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(sourceDone{err: ctx.Err()}))
	})
	defer stop()

	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()

		case *tcell.EventKey:
			if quitKey(ev) {
				return nil
			}
			if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' && v.hasFrame {
				v.lastErr = control(ctx, toggleEvent(v.frame))
				v.draw()
			}

		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case frameUpdate:
				v.frame = data.frame
				v.hasFrame = true
				v.draw()
			case sourceDone:
				if data.err == nil || errors.Is(data.err, io.EOF) || errors.Is(data.err, context.Canceled) {
					return nil
				}
				return data.err
			}
		}
	}
}

// pump forwards frames to the UI loop
func (v *Viewer) pump(source FrameSource) {
	for {
		frame, err := source.Next()
		if err != nil {
			_ = v.screen.PostEvent(tcell.NewEventInterrupt(sourceDone{err: err}))
			return
		}
		if v.screen.PostEvent(tcell.NewEventInterrupt(frameUpdate{frame: frame})) != nil {
			return
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func toggleEvent(f starfield.Frame) starfield.Event {
	if f.Paused() {
		return starfield.EventStart
	}
	return starfield.EventStop
}

func (v *Viewer) draw() {
	v.screen.Clear()
	v.drawText(0, 0, v.title, titleStyle)

	if !v.hasFrame {
		v.drawText(0, fieldRow, "Waiting for the voyage to start...", helpStyle)
		v.screen.Show()
		return
	}

	x := 0
	var names []string
	for _, c := range v.frame.Cells {
		style := fieldStyle
		if c.Paused {
			style = pausedStyle
		}
		x += v.drawText(x, fieldRow, c.Glyph, style) + 1
		if c.Name != "" {
			names = append(names, c.Glyph+" "+c.Name)
		}
	}

	status := statusMoving
	if v.frame.Paused() {
		status = statusStopped
	}
	line := fmt.Sprintf("%s at %d", status, v.frame.Position)
	if len(names) > 0 {
		line += "   " + strings.Join(names, "  ")
	}
	v.drawText(0, statusRow, line, fieldStyle)
	v.drawText(0, helpRow, helpText, helpStyle)
	if v.lastErr != nil {
		v.drawText(0, helpRow+1, v.lastErr.Error(), errorStyle)
	}

	v.screen.Show()
}

// drawText writes s starting at column x and returns the columns used
func (v *Viewer) drawText(x, y int, s string, style tcell.Style) int {
	start := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x - start
}
