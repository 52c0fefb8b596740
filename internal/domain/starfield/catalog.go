package starfield

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Kind classifies a destination
type Kind string

const (
	KindAsteroid Kind = "Asteroid"
	KindSpaceBar Kind = "SpaceBar"
	KindHome     Kind = "Home"
	KindShip     Kind = "Ship"
	KindMoon     Kind = "Moon"
)

// ParseKind validates a destination kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAsteroid, KindSpaceBar, KindHome, KindShip, KindMoon:
		return k, nil
	default:
		return "", fmt.Errorf("unknown destination kind %q", s)
	}
}

// Destination is a point of interest on the track
type Destination struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Kind   Kind   `json:"kind"`
}

// Placement pins a destination to a track coordinate
type Placement struct {
	Coordinate  int
	Destination Destination
}

// Catalog is the immutable, coordinate-ordered set of destinations
type Catalog struct {
	placements []Placement
	byCoord    map[int]Destination
}

// NewCatalog builds a catalog, rejecting negative or duplicate coordinates.
// Destinations without an ID are assigned a random one.
func NewCatalog(placements []Placement) (*Catalog, error) {
	c := &Catalog{
		placements: make([]Placement, 0, len(placements)),
		byCoord:    make(map[int]Destination, len(placements)),
	}

	for _, p := range placements {
		if p.Coordinate < 0 {
			return nil, fmt.Errorf("destination %q has negative coordinate %d", p.Destination.Name, p.Coordinate)
		}
		if existing, ok := c.byCoord[p.Coordinate]; ok {
			return nil, fmt.Errorf("coordinate %d already holds %q", p.Coordinate, existing.Name)
		}
		if p.Destination.ID == "" {
			p.Destination.ID = uuid.NewString()
		}
		c.byCoord[p.Coordinate] = p.Destination
		c.placements = append(c.placements, p)
	}

	sort.Slice(c.placements, func(i, j int) bool {
		return c.placements[i].Coordinate < c.placements[j].Coordinate
	})

	return c, nil
}

// MustNewCatalog panics if the placements are invalid
func MustNewCatalog(placements []Placement) *Catalog {
	c, err := NewCatalog(placements)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog returns the three stock destinations
func DefaultCatalog() *Catalog {
	return MustNewCatalog([]Placement{
		{Coordinate: 20, Destination: Destination{Name: "Asteroid 42", Symbol: "☄️", Kind: KindAsteroid}},
		{Coordinate: 30, Destination: Destination{Name: "Moon 42", Symbol: "🌙", Kind: KindMoon}},
		{Coordinate: 40, Destination: Destination{Name: "Big Steve", Symbol: "👾", Kind: KindShip}},
	})
}

// At returns the destination at an exact coordinate
func (c *Catalog) At(coordinate int) (Destination, bool) {
	if c == nil {
		return Destination{}, false
	}
	d, ok := c.byCoord[coordinate]
	return d, ok
}

// Placements returns a copy of the placements in coordinate order
func (c *Catalog) Placements() []Placement {
	if c == nil {
		return nil
	}
	out := make([]Placement, len(c.placements))
	copy(out, c.placements)
	return out
}

// Len returns the number of destinations
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.placements)
}
