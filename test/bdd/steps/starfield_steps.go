package steps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starfleet-go/internal/domain/shared"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

type starfieldContext struct {
	clock   *shared.MockClock
	voyage  *starfield.Voyage
	arrival *starfield.Placement

	state starfield.State
}

func (sc *starfieldContext) reset() {
	if sc.voyage != nil {
		sc.voyage.Close()
	}
	sc.clock = shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	sc.voyage = nil
	sc.arrival = nil
	sc.state = starfield.State{}
}

// Given steps

func (sc *starfieldContext) aVoyageOnTheDefaultStarfield() error {
	sc.voyage = starfield.NewVoyage(starfield.DefaultCatalog(), starfield.DefaultLayout(), starfield.DefaultDwell, sc.clock)
	return nil
}

func (sc *starfieldContext) aVoyageOnAnEmptyStarfieldOfWidth(width int) error {
	catalog, err := starfield.NewCatalog(nil)
	if err != nil {
		return err
	}
	sc.voyage = starfield.NewVoyage(catalog, starfield.NewLayout(width), starfield.DefaultDwell, sc.clock)
	return nil
}

func (sc *starfieldContext) aStateAtPosition(speed string, position int) error {
	sc.state = starfield.State{Speed: starfield.Speed(speed), Position: position}
	return nil
}

// When steps

func (sc *starfieldContext) theVoyageTicksTimes(n int) error {
	if sc.voyage == nil {
		return fmt.Errorf("no voyage available")
	}
	for i := 0; i < n; i++ {
		if result := sc.voyage.Tick(); result.Arrival != nil {
			sc.arrival = result.Arrival
		}
	}
	return nil
}

func (sc *starfieldContext) secondsPass(seconds int) error {
	if sc.voyage == nil {
		return fmt.Errorf("no voyage available")
	}
	sc.clock.Advance(time.Duration(seconds) * time.Second)
	select {
	case <-sc.voyage.ResumeC():
		sc.voyage.Resume()
	default:
	}
	return nil
}

func (sc *starfieldContext) thePilotSendsToTheVoyage(action string) error {
	if sc.voyage == nil {
		return fmt.Errorf("no voyage available")
	}
	event, ok := starfield.ParseEvent(action)
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	sc.voyage.Dispatch(event)
	return nil
}

func (sc *starfieldContext) theEventIsAppliedOnATrackOfLength(event string, trackLength int) error {
	sc.state = starfield.Step(sc.state, starfield.Event(event), trackLength)
	return nil
}

// Then steps

func (sc *starfieldContext) theVoyageShouldBeAtPosition(speed string, position int) error {
	if sc.voyage == nil {
		return fmt.Errorf("no voyage available")
	}
	return expectState(sc.voyage.State(), speed, position)
}

func (sc *starfieldContext) theStateShouldBeAtPosition(speed string, position int) error {
	return expectState(sc.state, speed, position)
}

func expectState(got starfield.State, speed string, position int) error {
	want := starfield.State{Speed: starfield.Speed(speed), Position: position}
	if got != want {
		return fmt.Errorf("expected %s at %d, got %s at %d", want.Speed, want.Position, got.Speed, got.Position)
	}
	return nil
}

func (sc *starfieldContext) theVoyageShouldHaveArrivedAt(name string) error {
	if sc.arrival == nil {
		return fmt.Errorf("voyage has not arrived anywhere")
	}
	if sc.arrival.Destination.Name != name {
		return fmt.Errorf("expected arrival at %q, got %q", name, sc.arrival.Destination.Name)
	}
	return nil
}

func (sc *starfieldContext) aResumeShouldBePending() error {
	if !sc.voyage.ResumePending() {
		return fmt.Errorf("expected a pending resume")
	}
	return nil
}

func (sc *starfieldContext) noResumeShouldBePending() error {
	if sc.voyage.ResumePending() {
		return fmt.Errorf("expected no pending resume")
	}
	if n := sc.clock.PendingTimers(); n != 0 {
		return fmt.Errorf("expected no armed timers, got %d", n)
	}
	return nil
}

func (sc *starfieldContext) theFrameShouldShowAtCell(name string, cell int) error {
	frame := sc.voyage.Frame()
	if cell < 0 || cell >= len(frame.Cells) {
		return fmt.Errorf("cell %d outside frame of %d cells", cell, len(frame.Cells))
	}
	got := frame.Cells[cell]
	switch name {
	case "the player":
		if got.Kind != starfield.CellPlayer {
			return fmt.Errorf("expected player at cell %d, got %s", cell, got.Kind)
		}
	case "empty space":
		if got.Kind != starfield.CellSpace {
			return fmt.Errorf("expected space at cell %d, got %s", cell, got.Kind)
		}
	default:
		if got.Kind != starfield.CellDestination || got.Name != name {
			return fmt.Errorf("expected %q at cell %d, got %s %q", name, cell, got.Kind, got.Name)
		}
	}
	return nil
}

func (sc *starfieldContext) thePlayerMarkerShouldBePaused() error {
	if !sc.voyage.Frame().Paused() {
		return fmt.Errorf("expected the player marker to be paused")
	}
	return nil
}

// InitializeStarfieldScenario registers the voyage state machine steps
func InitializeStarfieldScenario(ctx *godog.ScenarioContext) {
	sc := &starfieldContext{}

	ctx.Before(func(c context.Context, s *godog.Scenario) (context.Context, error) {
		sc.reset()
		return c, nil
	})

	ctx.Step(`^a voyage on the default starfield$`, sc.aVoyageOnTheDefaultStarfield)
	ctx.Step(`^a voyage on an empty starfield of width (\d+)$`, sc.aVoyageOnAnEmptyStarfieldOfWidth)
	ctx.Step(`^a (moving|stopped) state at position (\d+)$`, sc.aStateAtPosition)

	ctx.Step(`^the voyage ticks (\d+) times?$`, sc.theVoyageTicksTimes)
	ctx.Step(`^(\d+) seconds pass$`, sc.secondsPass)
	ctx.Step(`^the pilot sends "([^"]*)" to the voyage$`, sc.thePilotSendsToTheVoyage)
	ctx.Step(`^the event "([^"]*)" is applied on a track of length (\d+)$`, sc.theEventIsAppliedOnATrackOfLength)

	ctx.Step(`^the voyage should be (moving|stopped) at position (\d+)$`, sc.theVoyageShouldBeAtPosition)
	ctx.Step(`^the state should be (moving|stopped) at position (\d+)$`, sc.theStateShouldBeAtPosition)
	ctx.Step(`^the voyage should have arrived at "([^"]*)"$`, sc.theVoyageShouldHaveArrivedAt)
	ctx.Step(`^a resume should be pending$`, sc.aResumeShouldBePending)
	ctx.Step(`^no resume should be pending$`, sc.noResumeShouldBePending)
	ctx.Step(`^the frame should show (the player|empty space|"[^"]*") at cell (\d+)$`, func(name string, cell int) error {
		return sc.theFrameShouldShowAtCell(strings.Trim(name, `"`), cell)
	})
	ctx.Step(`^the player marker should be paused$`, sc.thePlayerMarkerShouldBePaused)
}
