// Package grid plans item placement into rectangular grid containers.
//
// A grid container addresses cells by 1-based (row, column) pairs. Given a
// batch of items, a fill strategy, and container bounds, the planner computes
// one target cell per item, preserving item order, without talking to the
// platform. Committing the plan (and detecting cells that are already
// occupied) is the platform's job.
package grid

import (
	"fmt"
)

// Strategy selects how cells are assigned to items.
type Strategy int

const (
	// ByRow fills cells left to right, then top to bottom.
	ByRow Strategy = iota
	// ByColumn fills cells top to bottom, then left to right.
	ByColumn
	// ByLocation assigns each item an explicitly supplied coordinate.
	ByLocation
)

// String returns the strategy name as used in tool parameters and logs.
func (s Strategy) String() string {
	switch s {
	case ByRow:
		return "by_row"
	case ByColumn:
		return "by_column"
	case ByLocation:
		return "by_location"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Bounds are the fixed dimensions of a grid container.
type Bounds struct {
	Rows    int
	Columns int
}

// Cells returns the total number of addressable cells.
func (b Bounds) Cells() int {
	return b.Rows * b.Columns
}

// Coord is a 1-based cell address within a grid container.
type Coord struct {
	Row    int
	Column int
}

// In reports whether the coordinate lies within bounds.
func (c Coord) In(b Bounds) bool {
	return c.Row >= 1 && c.Row <= b.Rows && c.Column >= 1 && c.Column <= b.Columns
}

// Placement pairs one item with its target cell.
type Placement struct {
	ItemID string
	Row    int
	Column int
}

// Request describes one placement batch. Start defaults to (1,1) when zero
// and is ignored for ByLocation; Locations is required for ByLocation and
// must match Items in length.
type Request struct {
	Items     []string
	Strategy  Strategy
	Bounds    Bounds
	Start     Coord
	Locations []Coord
}

// ValidationError reports malformed input: bad bounds, an out-of-bounds
// start or location, mismatched item/location counts, or duplicate locations.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "grid: invalid placement request: " + e.Reason
}

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CapacityError reports that the batch does not fit in a single linear
// traversal of the grid from the start position.
type CapacityError struct {
	Items int
	Cells int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("grid: %d items exceed container capacity of %d cells", e.Items, e.Cells)
}

// Plan computes one target cell per item, in item order. It is a pure
// function: identical requests produce identical plans, and no assignment is
// produced on error.
//
// ByRow and ByColumn walk the grid linearly from Start, wrapping past the
// last cell back to (1,1) at most once; the platform may still reject cells
// that are already occupied. ByLocation copies the supplied coordinates
// through after validating them.
func Plan(req Request) ([]Placement, error) {
	if len(req.Items) == 0 {
		return nil, validationf("no items to place")
	}
	if req.Bounds.Rows < 1 || req.Bounds.Columns < 1 {
		return nil, validationf("bounds %dx%d: both dimensions must be at least 1", req.Bounds.Rows, req.Bounds.Columns)
	}

	if req.Strategy == ByLocation {
		return planExplicit(req)
	}

	start := req.Start
	if start == (Coord{}) {
		start = Coord{Row: 1, Column: 1}
	}
	if !start.In(req.Bounds) {
		return nil, validationf("start position (%d,%d) outside %dx%d grid",
			start.Row, start.Column, req.Bounds.Rows, req.Bounds.Columns)
	}

	// The batch must fit within one full pass over the grid. The traversal
	// wraps from the last cell back to the first, so capacity is the total
	// cell count regardless of where the walk starts.
	if cells := req.Bounds.Cells(); len(req.Items) > cells {
		return nil, &CapacityError{Items: len(req.Items), Cells: cells}
	}

	switch req.Strategy {
	case ByRow:
		return planLinear(req.Items, req.Bounds, start, false), nil
	case ByColumn:
		return planLinear(req.Items, req.Bounds, start, true), nil
	default:
		return nil, validationf("unknown fill strategy %q", req.Strategy)
	}
}

// planLinear walks the grid from start, one cell per item. With columnMajor
// false the column index moves fastest (row-major); with it true the roles
// swap. Either walk wraps to cell (1,1) after the final cell.
func planLinear(items []string, b Bounds, start Coord, columnMajor bool) []Placement {
	fast, fastMax := start.Column, b.Columns
	slow, slowMax := start.Row, b.Rows
	if columnMajor {
		fast, fastMax = start.Row, b.Rows
		slow, slowMax = start.Column, b.Columns
	}

	out := make([]Placement, 0, len(items))
	for _, id := range items {
		p := Placement{ItemID: id, Row: slow, Column: fast}
		if columnMajor {
			p.Row, p.Column = fast, slow
		}
		out = append(out, p)

		fast++
		if fast > fastMax {
			fast = 1
			slow++
			if slow > slowMax {
				slow = 1
			}
		}
	}
	return out
}

// planExplicit validates the location list and pairs it with items by
// position.
func planExplicit(req Request) ([]Placement, error) {
	if len(req.Locations) != len(req.Items) {
		return nil, validationf("item/location count mismatch: %d items, %d locations",
			len(req.Items), len(req.Locations))
	}

	seen := make(map[Coord]struct{}, len(req.Locations))
	for _, loc := range req.Locations {
		if !loc.In(req.Bounds) {
			return nil, validationf("location (%d,%d) outside %dx%d grid",
				loc.Row, loc.Column, req.Bounds.Rows, req.Bounds.Columns)
		}
		if _, dup := seen[loc]; dup {
			return nil, validationf("duplicate location (%d,%d)", loc.Row, loc.Column)
		}
		seen[loc] = struct{}{}
	}

	out := make([]Placement, len(req.Items))
	for i, id := range req.Items {
		out[i] = Placement{ItemID: id, Row: req.Locations[i].Row, Column: req.Locations[i].Column}
	}
	return out, nil
}
