package starfield

import "strings"

const (
	// PlayerGlyph marks the current location
	PlayerGlyph = "🚀"
	// SpaceGlyph fills cells with no destination
	SpaceGlyph = "·"
)

// CellKind identifies what a rendered cell shows
type CellKind string

const (
	CellSpace       CellKind = "space"
	CellPlayer      CellKind = "player"
	CellDestination CellKind = "destination"
)

// Cell is one rendered position of the visible window
type Cell struct {
	Kind   CellKind `json:"kind"`
	Glyph  string   `json:"glyph"`
	Name   string   `json:"name,omitempty"`
	Paused bool     `json:"paused,omitempty"`
}

// Frame is the visible window derived from a state
type Frame struct {
	Position int    `json:"position"`
	Speed    Speed  `json:"speed"`
	Cells    []Cell `json:"cells"`
}

// Project derives the visible window for s. It reads the catalog only.
func Project(s State, catalog *Catalog, layout Layout) Frame {
	cells := make([]Cell, layout.VisibleWidth)

	for o := 0; o < layout.VisibleWidth; o++ {
		if o == layout.PlayerOffset {
			cells[o] = Cell{Kind: CellPlayer, Glyph: PlayerGlyph, Paused: !s.IsMoving()}
			continue
		}
		if d, ok := catalog.At(layout.Wrap(s.Position + o)); ok {
			cells[o] = Cell{Kind: CellDestination, Glyph: d.Symbol, Name: d.Name}
			continue
		}
		cells[o] = Cell{Kind: CellSpace, Glyph: SpaceGlyph}
	}

	return Frame{Position: s.Position, Speed: s.Speed, Cells: cells}
}

// Paused reports whether the player marker is paused
func (f Frame) Paused() bool {
	return f.Speed == SpeedStopped
}

// String joins the cell glyphs
func (f Frame) String() string {
	var b strings.Builder
	for _, c := range f.Cells {
		b.WriteString(c.Glyph)
	}
	return b.String()
}
