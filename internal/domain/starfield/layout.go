package starfield

import "fmt"

// Layout describes the visible window onto the track
type Layout struct {
	// VisibleWidth is the number of cells rendered
	VisibleWidth int
	// PlayerOffset is the window index of the player marker
	PlayerOffset int
}

// DefaultLayout is a 21-cell window with the player in the middle
func DefaultLayout() Layout {
	return NewLayout(21)
}

// NewLayout creates a layout with the player marker centered
func NewLayout(visibleWidth int) Layout {
	return Layout{VisibleWidth: visibleWidth, PlayerOffset: visibleWidth / 2}
}

// TrackLength is twice the visible width
func (l Layout) TrackLength() int {
	return l.VisibleWidth * 2
}

// Wrap maps any coordinate onto the track
func (l Layout) Wrap(coordinate int) int {
	n := l.TrackLength()
	if n <= 0 {
		return coordinate
	}
	coordinate %= n
	if coordinate < 0 {
		coordinate += n
	}
	return coordinate
}

// Validate checks the layout and that every catalog coordinate lies on the track
func (l Layout) Validate(catalog *Catalog) error {
	if l.VisibleWidth < 3 {
		return fmt.Errorf("visible width must be at least 3, got %d", l.VisibleWidth)
	}
	if l.PlayerOffset < 0 || l.PlayerOffset >= l.VisibleWidth {
		return fmt.Errorf("player offset %d outside window of width %d", l.PlayerOffset, l.VisibleWidth)
	}
	if catalog == nil {
		return nil
	}
	for _, p := range catalog.Placements() {
		if p.Coordinate >= l.TrackLength() {
			return fmt.Errorf("destination %q at %d is beyond track length %d",
				p.Destination.Name, p.Coordinate, l.TrackLength())
		}
	}
	return nil
}
