package regions

import (
	"sort"

	"github.com/tsawler/zonetext/model"
)

// DefaultOrder is the sort key given to regions without an explicit order.
const DefaultOrder = 1e9

// Region is a rectangle on a specific page
type Region struct {
	Page  int
	X0    float64
	Y0    float64
	X1    float64
	Y1    float64
	Order float64 // Ascending processing order; DefaultOrder when absent
}

// Rect returns the region as a normalised rectangle.
func (r Region) Rect() model.Rect {
	return model.NewRect(r.X0, r.Y0, r.X1, r.Y1)
}

// IsEmpty reports a region with zero width or zero height
func (r Region) IsEmpty() bool {
	return r.Rect().IsEmpty()
}

// RegionSet is the ordered list of regions defined for one page
type RegionSet struct {
	Page    int
	Regions []Region
}

// Len returns the number of regions in the set
func (s *RegionSet) Len() int {
	return len(s.Regions)
}

// Store indexes region sets by page number. A nil or empty Store resolves
// every page to no regions.
type Store struct {
	sets  map[int]*RegionSet
	pages []int // Sorted page numbers with a set
}

// NewStore groups regions by page and orders each page's regions by their
// Order key. Regions with equal keys keep their input order.
func NewStore(regions []Region) *Store {
	s := &Store{sets: make(map[int]*RegionSet)}
	for _, r := range regions {
		set, ok := s.sets[r.Page]
		if !ok {
			set = &RegionSet{Page: r.Page}
			s.sets[r.Page] = set
			s.pages = append(s.pages, r.Page)
		}
		set.Regions = append(set.Regions, r)
	}

	sort.Ints(s.pages)
	for _, set := range s.sets {
		sort.SliceStable(set.Regions, func(i, j int) bool {
			return set.Regions[i].Order < set.Regions[j].Order
		})
	}
	return s
}

// Set returns the explicit region set for a page.
func (s *Store) Set(page int) (*RegionSet, bool) {
	if s == nil {
		return nil, false
	}
	set, ok := s.sets[page]
	return set, ok
}

// Pages returns the page numbers that have an explicit set, ascending.
func (s *Store) Pages() []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s.pages))
	copy(out, s.pages)
	return out
}

// Len returns the number of pages with an explicit set
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pages)
}
