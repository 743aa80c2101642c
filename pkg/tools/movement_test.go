package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

type bulkRecord struct {
	GlobalID         string `json:"globalId"`
	CoordX           int    `json:"coordX"`
	CoordY           int    `json:"coordY"`
	ParentContainers []struct {
		GlobalID string `json:"globalId"`
	} `json:"parentContainers"`
}

type bulkPayload struct {
	OperationType string       `json:"operationType"`
	Records       []bulkRecord `json:"records"`
}

// fakePlatform serves a 2x3 grid container and records bulk move payloads.
type fakePlatform struct {
	bulk         []bulkPayload
	bulkStatus   int
	containerGet int
}

func (f *fakePlatform) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/inventory/v1/containers/", func(w http.ResponseWriter, r *http.Request) {
		f.containerGet++
		json.NewEncoder(w).Encode(rspace.Container{
			GlobalID: "IC1",
			CType:    rspace.ContainerTypeGrid,
			Grid:     &rspace.GridLayout{RowsNumber: 2, ColumnsNumber: 3},
		})
	})
	mux.HandleFunc("/api/inventory/v1/bulk", func(w http.ResponseWriter, r *http.Request) {
		var payload bulkPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding bulk payload: %v", err)
		}
		f.bulk = append(f.bulk, payload)
		if f.bulkStatus != 0 {
			w.WriteHeader(f.bulkStatus)
			w.Write([]byte(`{"message":"content already present in the location"}`))
			return
		}
		w.Write([]byte(`{"status":"COMPLETED"}`))
	})
	return mux
}

func newTestToolset(t *testing.T, platform *fakePlatform) *Toolset {
	t.Helper()
	srv := httptest.NewServer(platform.handler(t))
	t.Cleanup(srv.Close)

	client, err := rspace.NewClient(rspace.Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewToolset(client)
}

func runTool(t *testing.T, ts *Toolset, name string, args map[string]any) *Result {
	t.Helper()
	tool := ts.Registry().Get(name)
	if tool == nil {
		t.Fatalf("tool %q not registered", name)
	}
	result, err := tool.Execute(context.Background(), args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return result
}

func TestMoveByRowAutoDetectsBounds(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_grid_container_by_row", map[string]any{
		"item_ids":            []any{"SS1", "SS2", "SS3", "SS4"},
		"target_container_id": "IC1",
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}
	if platform.containerGet != 1 {
		t.Errorf("container lookups = %d, want 1 (bounds auto-detect)", platform.containerGet)
	}
	if len(platform.bulk) != 1 {
		t.Fatalf("bulk calls = %d, want 1", len(platform.bulk))
	}

	payload := platform.bulk[0]
	if payload.OperationType != "MOVE" {
		t.Errorf("operationType = %q", payload.OperationType)
	}
	// Row-major on a 2x3 grid: (1,1) (1,2) (1,3) (2,1). X is column, Y row.
	want := []struct{ x, y int }{{1, 1}, {2, 1}, {3, 1}, {1, 2}}
	if len(payload.Records) != len(want) {
		t.Fatalf("records = %d, want %d", len(payload.Records), len(want))
	}
	for i, rec := range payload.Records {
		if rec.CoordX != want[i].x || rec.CoordY != want[i].y {
			t.Errorf("record %d at (%d,%d), want (%d,%d)", i, rec.CoordX, rec.CoordY, want[i].x, want[i].y)
		}
		if len(rec.ParentContainers) != 1 || rec.ParentContainers[0].GlobalID != "IC1" {
			t.Errorf("record %d parent = %+v, want IC1", i, rec.ParentContainers)
		}
	}
}

func TestMoveByColumnWithExplicitBounds(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_grid_container_by_column", map[string]any{
		"item_ids":            []any{"SS1", "SS2", "SS3"},
		"target_container_id": "IC1",
		"total_rows":          float64(2),
		"total_columns":       float64(3),
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}
	if platform.containerGet != 0 {
		t.Errorf("container lookups = %d, want 0 when dimensions are supplied", platform.containerGet)
	}

	// Column-major on a 2x3 grid: (1,1) (2,1) (1,2).
	want := []struct{ x, y int }{{1, 1}, {1, 2}, {2, 1}}
	records := platform.bulk[0].Records
	for i, rec := range records {
		if rec.CoordX != want[i].x || rec.CoordY != want[i].y {
			t.Errorf("record %d at (%d,%d), want (%d,%d)", i, rec.CoordX, rec.CoordY, want[i].x, want[i].y)
		}
	}
}

func TestMoveToExplicitLocations(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_specific_grid_locations", map[string]any{
		"item_ids":            []any{"SS1", "SS2"},
		"target_container_id": "IC1",
		"locations": []any{
			map[string]any{"row": float64(2), "column": float64(3)},
			map[string]any{"row": float64(1), "column": float64(1)},
		},
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}

	records := platform.bulk[0].Records
	if records[0].CoordX != 3 || records[0].CoordY != 2 {
		t.Errorf("record 0 at (%d,%d), want (3,2)", records[0].CoordX, records[0].CoordY)
	}
	if records[1].CoordX != 1 || records[1].CoordY != 1 {
		t.Errorf("record 1 at (%d,%d), want (1,1)", records[1].CoordX, records[1].CoordY)
	}
}

func TestMoveLegacyCoordinateSpelling(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_specific_grid_locations", map[string]any{
		"item_ids":            []any{"SS1"},
		"target_container_id": "IC1",
		"locations": []any{
			map[string]any{"x": float64(3), "y": float64(2)},
		},
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}

	rec := platform.bulk[0].Records[0]
	if rec.CoordX != 3 || rec.CoordY != 2 {
		t.Errorf("record at (%d,%d), want x=3 y=2", rec.CoordX, rec.CoordY)
	}
}

func TestMoveRejectsOversizedBatch(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_grid_container_by_row", map[string]any{
		"item_ids":            []any{"1", "2", "3", "4", "5", "6", "7"},
		"target_container_id": "IC1",
	})
	if !result.IsError() {
		t.Fatalf("result = %s, want error for 7 items on a 6-cell grid", result.Status)
	}
	if !strings.Contains(result.Error, "exceed container capacity") {
		t.Errorf("error = %q, want capacity message", result.Error)
	}
	if len(platform.bulk) != 0 {
		t.Error("no placement should be committed when the batch does not fit")
	}
}

func TestMoveSurfacesPlatformConflict(t *testing.T) {
	platform := &fakePlatform{bulkStatus: http.StatusConflict}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_grid_container_by_row", map[string]any{
		"item_ids":            []any{"SS1"},
		"target_container_id": "IC1",
	})
	if !result.IsError() {
		t.Fatalf("result = %s, want error on 409", result.Status)
	}
	if !strings.Contains(result.Error, "already occupied") {
		t.Errorf("error = %q, want occupied-cell message", result.Error)
	}
}

func TestMoveToListContainer(t *testing.T) {
	platform := &fakePlatform{}
	ts := newTestToolset(t, platform)

	result := runTool(t, ts, "move_items_to_list_container", map[string]any{
		"item_ids":            []any{"SS1", "SA2"},
		"target_container_id": "IC1",
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}
	if platform.containerGet != 0 {
		t.Error("list moves should not look up grid bounds")
	}

	records := platform.bulk[0].Records
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	// List containers carry no coordinates.
	if records[0].CoordX != 0 || records[0].CoordY != 0 {
		t.Errorf("list move carried coordinates: (%d,%d)", records[0].CoordX, records[0].CoordY)
	}
}
