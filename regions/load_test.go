package regions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad_Flat(t *testing.T) {
	path := writeFile(t, "flat.json", `[
		{"page": 1, "x0": 10, "y0": 20, "x1": 300, "y1": 400, "order": 2},
		{"page": 1, "x0": 10, "y0": 420, "x1": 300, "y1": 700, "order": 1},
		{"x0": 1, "y0": 1, "x1": 2, "y1": 2}
	]`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, ok := s.Set(1)
	if !ok {
		t.Fatal("expected regions on page 1")
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 regions (pageless record dropped), got %d", set.Len())
	}
	if set.Regions[0].Y0 != 420 {
		t.Errorf("expected order 1 region first, got y0=%v", set.Regions[0].Y0)
	}
}

func TestLoad_NestedAndMixed(t *testing.T) {
	path := writeFile(t, "nested.json", `[
		{"page": 2, "regions": [
			{"x0": 0, "y0": 0, "x1": 100, "y1": 100},
			{"page": 9, "x0": 0, "y0": 100, "x1": 100, "y1": 200, "order": 0}
		]},
		{"page": 3, "x0": 5, "y0": 5, "x1": 50, "y1": 50}
	]`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	set, ok := s.Set(2)
	if !ok || set.Len() != 2 {
		t.Fatalf("expected 2 regions on page 2, got %v", set)
	}
	if set.Regions[0].Y0 != 100 {
		t.Error("expected ordered child region first")
	}
	if set.Regions[1].Order != DefaultOrder {
		t.Errorf("expected missing order to default to %v, got %v", DefaultOrder, set.Regions[1].Order)
	}
	if _, ok := s.Set(3); !ok {
		t.Error("expected flat record on page 3")
	}
	if _, ok := s.Set(9); ok {
		t.Error("nested child should take its parent's page")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "regions.yaml", `
- page: 4
  regions:
    - {x0: 0, y0: 0, x1: 200, y1: 300, order: 1}
    - {x0: 200, y0: 0, x1: 400, y1: 300, order: 2}
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set, ok := s.Set(4)
	if !ok || set.Len() != 2 {
		t.Fatalf("expected 2 regions on page 4")
	}
	if set.Regions[1].X0 != 200 {
		t.Errorf("expected second region at x0=200, got %v", set.Regions[1].X0)
	}
}

func TestLoad_SingleObject(t *testing.T) {
	path := writeFile(t, "one.json", `{"page": 7, "regions": [{"x0": 0, "y0": 0, "x1": 1, "y1": 1}]}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, ok := s.Set(7); !ok {
		t.Error("expected page 7 from a single top-level object")
	}
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.json"))

	if !errors.Is(err, ErrNoRegionFile) {
		t.Fatalf("expected ErrNoRegionFile, got %v", err)
	}
	if s == nil || s.Len() != 0 {
		t.Error("expected an empty, non-nil store")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad.json", `[{"page": 1, "x0": `},
		{"wrong-type.json", `[{"page": "one"}]`},
		{"bad.yaml", "- page: [1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(writeFile(t, tt.name, tt.content))
			if !errors.Is(err, ErrInvalidRegions) {
				t.Errorf("expected ErrInvalidRegions, got %v", err)
			}
			if s != nil {
				t.Error("expected nil store on error")
			}
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	s, err := Load(writeFile(t, "empty.json", "  \n"))
	if err != nil {
		t.Fatalf("expected empty file to load, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected no sets, got %d", s.Len())
	}
}
