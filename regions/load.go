package regions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoRegionFile is returned alongside an empty Store when the region
	// file does not exist. Callers treat it as a warning.
	ErrNoRegionFile = errors.New("region file not found")

	// ErrInvalidRegions is returned when a region file exists but cannot
	// be decoded.
	ErrInvalidRegions = errors.New("invalid region file")
)

// rawRegion mirrors one record of a region file. A record is either a
// region with its own page or a page entry holding nested regions.
type rawRegion struct {
	Page    *int        `json:"page" yaml:"page"`
	X0      float64     `json:"x0" yaml:"x0"`
	Y0      float64     `json:"y0" yaml:"y0"`
	X1      float64     `json:"x1" yaml:"x1"`
	Y1      float64     `json:"y1" yaml:"y1"`
	Order   *float64    `json:"order" yaml:"order"`
	Regions []rawRegion `json:"regions" yaml:"regions"`
}

// Load reads a region file. A missing file yields an empty Store together
// with ErrNoRegionFile; an unreadable or malformed file yields a nil Store
// and an error wrapping ErrInvalidRegions.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewStore(nil), fmt.Errorf("%w: %s", ErrNoRegionFile, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRegions, path, err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	default:
		format = "json"
	}

	regions, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRegions, path, err)
	}
	return NewStore(regions), nil
}

// Parse decodes region records in the given format ("json" or "yaml") and
// flattens nested page entries, which give their page to every child. A
// single top-level object is treated as a one-element list.
func Parse(data []byte, format string) ([]Region, error) {
	var records []rawRegion

	switch format {
	case "yaml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.MappingNode {
			var one rawRegion
			if err := root.Decode(&one); err != nil {
				return nil, err
			}
			records = []rawRegion{one}
		} else if err := root.Decode(&records); err != nil {
			return nil, err
		}
	case "json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) == 0 {
			return nil, nil
		}
		if trimmed[0] == '{' {
			var one rawRegion
			if err := json.Unmarshal(trimmed, &one); err != nil {
				return nil, err
			}
			records = []rawRegion{one}
		} else if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported region format %q", format)
	}

	return flatten(records), nil
}

func flatten(records []rawRegion) []Region {
	var out []Region
	for _, rec := range records {
		if rec.Regions != nil {
			for _, child := range rec.Regions {
				child.Page = rec.Page
				if r, ok := child.region(); ok {
					out = append(out, r)
				}
			}
			continue
		}
		if r, ok := rec.region(); ok {
			out = append(out, r)
		}
	}
	return out
}

func (rec rawRegion) region() (Region, bool) {
	if rec.Page == nil {
		return Region{}, false
	}
	r := Region{
		Page:  *rec.Page,
		X0:    rec.X0,
		Y0:    rec.Y0,
		X1:    rec.X1,
		Y1:    rec.Y1,
		Order: DefaultOrder,
	}
	if rec.Order != nil {
		r.Order = *rec.Order
	}
	return r, true
}
