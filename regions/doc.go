// Package regions loads user-drawn page regions and decides which regions
// apply to a page.
//
// # Region Files
//
// A region file lists rectangles in top-left page coordinates (points,
// y growing downward). Two shapes are accepted, and may be mixed in one
// file:
//
//	[{"page": 3, "x0": 40, "y0": 60, "x1": 300, "y1": 700, "order": 1}]
//
//	[{"page": 3, "regions": [{"x0": 40, "y0": 60, "x1": 300, "y1": 700}]}]
//
// Files ending in .yaml or .yml are read as YAML with the same keys;
// everything else is read as JSON. Records without a page are dropped.
//
// # Resolution
//
// [Store.Resolve] picks the regions for a page: the page's own set, else
// the nearest earlier page with a set, else the set last resolved during
// the run (kept in a caller-owned [State]), else none.
package regions
