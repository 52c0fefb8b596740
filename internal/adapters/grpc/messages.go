package grpc

import (
	"time"

	"github.com/andrescamacho/starfleet-go/internal/domain/ship"
	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

// Requests identify the owner by email; the daemon resolves the user.

type ListShipsRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
}

type ListShipsResponse struct {
	Ships []*ShipInfo `msgpack:"ships"`
}

type GetShipRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
	ShipID     string `msgpack:"ship_id"`
}

type CreateShipRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
	Name       string `msgpack:"name"`
}

type ShipResponse struct {
	Ship *ShipInfo `msgpack:"ship"`
}

type DeleteShipRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
	ShipID     string `msgpack:"ship_id"`
}

type DeleteShipResponse struct {
	Deleted int64 `msgpack:"deleted"`
}

type WatchStarfieldRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
	ShipID     string `msgpack:"ship_id"`
}

// StarfieldEvent is one message of a WatchStarfield stream. The first
// message only names the voyage; every later one carries a frame.
type StarfieldEvent struct {
	VoyageID string        `msgpack:"voyage_id"`
	Frame    *FrameMessage `msgpack:"frame"`
}

type ControlVoyageRequest struct {
	OwnerEmail string `msgpack:"owner_email"`
	VoyageID   string `msgpack:"voyage_id"`
	Action     string `msgpack:"action"`
}

type ControlVoyageResponse struct{}

// ShipInfo is the wire form of a ship
type ShipInfo struct {
	ID        string    `msgpack:"id"`
	Name      string    `msgpack:"name"`
	OwnerID   string    `msgpack:"owner_id"`
	CreatedAt time.Time `msgpack:"created_at"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

type FrameMessage struct {
	Position int           `msgpack:"position"`
	Speed    string        `msgpack:"speed"`
	Cells    []CellMessage `msgpack:"cells"`
}

type CellMessage struct {
	Kind   string `msgpack:"kind"`
	Glyph  string `msgpack:"glyph"`
	Name   string `msgpack:"name,omitempty"`
	Paused bool   `msgpack:"paused,omitempty"`
}

func toShipInfo(s *ship.Ship) *ShipInfo {
	return &ShipInfo{
		ID:        s.ID(),
		Name:      s.Name(),
		OwnerID:   s.OwnerID().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func toFrameMessage(f starfield.Frame) *FrameMessage {
	cells := make([]CellMessage, len(f.Cells))
	for i, c := range f.Cells {
		cells[i] = CellMessage{Kind: string(c.Kind), Glyph: c.Glyph, Name: c.Name, Paused: c.Paused}
	}
	return &FrameMessage{Position: f.Position, Speed: string(f.Speed), Cells: cells}
}

// ToFrame converts the wire form back into a domain frame
func (m *FrameMessage) ToFrame() starfield.Frame {
	cells := make([]starfield.Cell, len(m.Cells))
	for i, c := range m.Cells {
		cells[i] = starfield.Cell{Kind: starfield.CellKind(c.Kind), Glyph: c.Glyph, Name: c.Name, Paused: c.Paused}
	}
	return starfield.Frame{Position: m.Position, Speed: starfield.Speed(m.Speed), Cells: cells}
}
