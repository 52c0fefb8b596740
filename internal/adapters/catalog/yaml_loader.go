// Package catalog loads destination catalogs from YAML files.
//
// File format:
//
//	destinations:
//	  - name: Asteroid 42
//	    symbol: "☄️"
//	    kind: Asteroid
//	    coordinate: 20
package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/starfleet-go/internal/domain/starfield"
)

type catalogFile struct {
	Destinations []destinationEntry `yaml:"destinations"`
}

type destinationEntry struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Symbol     string `yaml:"symbol"`
	Kind       string `yaml:"kind"`
	Coordinate int    `yaml:"coordinate"`
}

// Load returns the default catalog when path is empty, otherwise the catalog in the file
func Load(path string) (*starfield.Catalog, error) {
	if path == "" {
		return starfield.DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a YAML catalog
func Decode(r io.Reader) (*starfield.Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	placements := make([]starfield.Placement, 0, len(file.Destinations))
	for i, d := range file.Destinations {
		if d.Name == "" || d.Symbol == "" {
			return nil, fmt.Errorf("destination %d: name and symbol are required", i)
		}
		kind, err := starfield.ParseKind(d.Kind)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", d.Name, err)
		}
		placements = append(placements, starfield.Placement{
			Coordinate: d.Coordinate,
			Destination: starfield.Destination{
				ID:     d.ID,
				Name:   d.Name,
				Symbol: d.Symbol,
				Kind:   kind,
			},
		})
	}

	return starfield.NewCatalog(placements)
}
