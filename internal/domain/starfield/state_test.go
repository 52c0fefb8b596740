package starfield_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

const track = 42

func TestStep_StartAndStopKeepPosition(t *testing.T) {
	states := []starfield.State{
		{Speed: starfield.SpeedMoving, Position: 7},
		{Speed: starfield.SpeedStopped, Position: 7},
	}

	for _, s := range states {
		assert.Equal(t, starfield.State{Speed: starfield.SpeedMoving, Position: 7}, starfield.Step(s, starfield.EventStart, track))
		assert.Equal(t, starfield.State{Speed: starfield.SpeedStopped, Position: 7}, starfield.Step(s, starfield.EventStop, track))
	}
}

func TestStep_AdvanceWhileMoving(t *testing.T) {
	// Arrange
	s := starfield.State{Speed: starfield.SpeedMoving, Position: 3}

	// Act
	next := starfield.Step(s, starfield.EventAdvance, track)

	// Assert
	assert.Equal(t, 4, next.Position)
	assert.Equal(t, starfield.SpeedMoving, next.Speed)
}

func TestStep_AdvanceWhileStoppedIsNoOp(t *testing.T) {
	s := starfield.State{Speed: starfield.SpeedStopped, Position: 12}

	assert.Equal(t, s, starfield.Step(s, starfield.EventAdvance, track))
}

func TestStep_AdvanceWrapsAtTrackLength(t *testing.T) {
	layout := starfield.NewLayout(21)
	s := starfield.State{Speed: starfield.SpeedMoving, Position: layout.VisibleWidth*2 - 1}

	next := starfield.Step(s, starfield.EventAdvance, layout.TrackLength())

	assert.Equal(t, 0, next.Position)
}

func TestStep_UnknownEventLeavesStateUnchanged(t *testing.T) {
	unknown := []starfield.Event{"", "forward", "warp", "START"}
	states := []starfield.State{
		starfield.InitialState(),
		{Speed: starfield.SpeedStopped, Position: 41},
	}

	for _, s := range states {
		for _, e := range unknown {
			assert.Equal(t, s, starfield.Step(s, e, track), "event %q", e)
		}
	}
}

func TestStep_PositionNeverDecreasesExceptWrap(t *testing.T) {
	s := starfield.InitialState()
	for i := 0; i < track*3; i++ {
		next := starfield.Step(s, starfield.EventAdvance, track)
		if next.Position != 0 {
			assert.Equal(t, s.Position+1, next.Position)
		} else {
			assert.Equal(t, track-1, s.Position)
		}
		s = next
	}
}

func TestParseEvent(t *testing.T) {
	e, ok := starfield.ParseEvent("stop")
	assert.True(t, ok)
	assert.Equal(t, starfield.EventStop, e)

	_, ok = starfield.ParseEvent("jump")
	assert.False(t, ok)
}
