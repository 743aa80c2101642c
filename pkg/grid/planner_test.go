package grid

import (
	"errors"
	"reflect"
	"testing"
)

func items(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i%26))
		if i >= 26 {
			out[i] = out[i] + string(rune('0'+i/26))
		}
	}
	return out
}

func TestPlanByRow(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []Placement
	}{
		{
			name: "fills first row left to right",
			req: Request{
				Items:  []string{"a", "b", "c"},
				Bounds: Bounds{Rows: 8, Columns: 12},
				Start:  Coord{Row: 1, Column: 1},
			},
			want: []Placement{{"a", 1, 1}, {"b", 1, 2}, {"c", 1, 3}},
		},
		{
			name: "wraps to next row",
			req: Request{
				Items:  []string{"a", "b", "c"},
				Bounds: Bounds{Rows: 3, Columns: 2},
				Start:  Coord{Row: 1, Column: 2},
			},
			want: []Placement{{"a", 1, 2}, {"b", 2, 1}, {"c", 2, 2}},
		},
		{
			name: "wraps past the last cell back to (1,1)",
			req: Request{
				Items:  []string{"a", "b", "c"},
				Bounds: Bounds{Rows: 2, Columns: 2},
				Start:  Coord{Row: 2, Column: 2},
			},
			want: []Placement{{"a", 2, 2}, {"b", 1, 1}, {"c", 1, 2}},
		},
		{
			name: "zero start defaults to (1,1)",
			req: Request{
				Items:  []string{"a", "b"},
				Bounds: Bounds{Rows: 2, Columns: 2},
			},
			want: []Placement{{"a", 1, 1}, {"b", 1, 2}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Plan(tc.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlanByColumn(t *testing.T) {
	got, err := Plan(Request{
		Items:    []string{"a", "b", "c", "d"},
		Strategy: ByColumn,
		Bounds:   Bounds{Rows: 3, Columns: 4},
		Start:    Coord{Row: 2, Column: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Placement{{"a", 2, 1}, {"b", 3, 1}, {"c", 1, 2}, {"d", 2, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanByColumnWrapsPastLastCell(t *testing.T) {
	got, err := Plan(Request{
		Items:    []string{"a", "b", "c"},
		Strategy: ByColumn,
		Bounds:   Bounds{Rows: 2, Columns: 2},
		Start:    Coord{Row: 2, Column: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Placement{{"a", 2, 2}, {"b", 1, 1}, {"c", 2, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// A full-grid batch visits every cell exactly once; one more item overflows.
func TestPlanCapacityBoundary(t *testing.T) {
	for _, strategy := range []Strategy{ByRow, ByColumn} {
		t.Run(strategy.String(), func(t *testing.T) {
			b := Bounds{Rows: 4, Columns: 6}
			got, err := Plan(Request{Items: items(b.Cells()), Strategy: strategy, Bounds: b})
			if err != nil {
				t.Fatalf("full grid should fit: %v", err)
			}
			seen := make(map[Coord]string, len(got))
			for _, p := range got {
				c := Coord{Row: p.Row, Column: p.Column}
				if !c.In(b) {
					t.Fatalf("placement %v outside bounds", p)
				}
				if prev, dup := seen[c]; dup {
					t.Fatalf("cell (%d,%d) assigned to both %s and %s", p.Row, p.Column, prev, p.ItemID)
				}
				seen[c] = p.ItemID
			}
			if len(seen) != b.Cells() {
				t.Fatalf("visited %d cells, want %d", len(seen), b.Cells())
			}

			_, err = Plan(Request{Items: items(b.Cells() + 1), Strategy: strategy, Bounds: b})
			var capErr *CapacityError
			if !errors.As(err, &capErr) {
				t.Fatalf("expected CapacityError, got %v", err)
			}
			if capErr.Items != b.Cells()+1 || capErr.Cells != b.Cells() {
				t.Fatalf("CapacityError %+v, want items=%d cells=%d", capErr, b.Cells()+1, b.Cells())
			}
		})
	}
}

func TestPlanCapacityOverflowSmallGrid(t *testing.T) {
	_, err := Plan(Request{
		Items:  []string{"a", "b", "c", "d", "e"},
		Bounds: Bounds{Rows: 2, Columns: 2},
		Start:  Coord{Row: 1, Column: 1},
	})
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
}

func TestPlanByRowStrictlyIncreasingLinearOrder(t *testing.T) {
	b := Bounds{Rows: 5, Columns: 7}
	start := Coord{Row: 3, Column: 4}
	got, err := Plan(Request{Items: items(20), Bounds: b, Start: start})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Linear index relative to the start cell, modulo the grid size, must
	// increase by exactly one per item.
	startIdx := (start.Row-1)*b.Columns + (start.Column - 1)
	for i, p := range got {
		idx := (p.Row-1)*b.Columns + (p.Column - 1)
		rel := ((idx - startIdx) % b.Cells() + b.Cells()) % b.Cells()
		if rel != i {
			t.Fatalf("item %d at (%d,%d): linear offset %d, want %d", i, p.Row, p.Column, rel, i)
		}
	}
}

func TestPlanByLocation(t *testing.T) {
	locs := []Coord{{Row: 2, Column: 3}, {Row: 1, Column: 1}, {Row: 4, Column: 4}}
	got, err := Plan(Request{
		Items:     []string{"x", "y", "z"},
		Strategy:  ByLocation,
		Bounds:    Bounds{Rows: 4, Columns: 4},
		Locations: locs,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Placement{{"x", 2, 3}, {"y", 1, 1}, {"z", 4, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlanValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{
			name: "no items",
			req:  Request{Bounds: Bounds{Rows: 2, Columns: 2}},
		},
		{
			name: "bad bounds",
			req:  Request{Items: []string{"a"}, Bounds: Bounds{Rows: 0, Columns: 2}},
		},
		{
			name: "start outside grid",
			req: Request{
				Items:  []string{"a"},
				Bounds: Bounds{Rows: 2, Columns: 2},
				Start:  Coord{Row: 3, Column: 1},
			},
		},
		{
			name: "location count mismatch",
			req: Request{
				Items:     []string{"a", "b"},
				Strategy:  ByLocation,
				Bounds:    Bounds{Rows: 2, Columns: 2},
				Locations: []Coord{{Row: 1, Column: 1}},
			},
		},
		{
			name: "location outside grid",
			req: Request{
				Items:     []string{"a"},
				Strategy:  ByLocation,
				Bounds:    Bounds{Rows: 2, Columns: 2},
				Locations: []Coord{{Row: 1, Column: 3}},
			},
		},
		{
			name: "duplicate locations",
			req: Request{
				Items:     []string{"a", "b"},
				Strategy:  ByLocation,
				Bounds:    Bounds{Rows: 2, Columns: 2},
				Locations: []Coord{{Row: 1, Column: 1}, {Row: 1, Column: 1}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Plan(tc.req)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got != nil {
				t.Fatalf("expected no placements on failure, got %v", got)
			}
		})
	}
}

// Plan is a pure function: identical requests yield identical plans.
func TestPlanIdempotent(t *testing.T) {
	req := Request{
		Items:    items(10),
		Strategy: ByColumn,
		Bounds:   Bounds{Rows: 4, Columns: 5},
		Start:    Coord{Row: 2, Column: 3},
	}
	first, err := Plan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Plan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ:\n%v\n%v", first, second)
	}
}
