package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

func TestToolsetRegistersEverything(t *testing.T) {
	ts := newTestToolset(t, &fakePlatform{})
	reg := ts.Registry()

	expected := []string{
		"rspace_status", "get_documents", "get_document", "update_document",
		"create_notebook", "create_notebook_entry", "tag_document", "rename_document",
		"get_forms", "get_form", "create_form", "create_document_from_form",
		"delete_form", "publish_form", "unpublish_form", "share_form", "unshare_form",
		"get_audit_events", "download_file",
		"create_sample", "get_sample", "list_samples", "duplicate_sample",
		"split_subsample", "add_note_to_subsample", "search_inventory",
		"create_list_container", "create_grid_container", "get_container",
		"list_containers", "get_workbenches", "get_container_summary",
		"get_container_contents_only",
		"move_items_to_list_container", "move_items_to_grid_container_by_row",
		"move_items_to_grid_container_by_column", "move_items_to_specific_grid_locations",
		"create_sample_template", "get_sample_template", "list_sample_templates",
		"rename_inventory_item", "add_extra_fields_to_item", "generate_barcode",
		"bulk_create_samples", "get_recent_samples_summary",
	}
	for _, name := range expected {
		if !reg.Has(name) {
			t.Errorf("tool %q not registered", name)
		}
	}
	if got := len(reg.All()); got != len(expected) {
		t.Errorf("registry holds %d tools, expected %d", got, len(expected))
	}

	for alias, canonical := range legacyAliases {
		tool := reg.Get(alias)
		if tool == nil {
			t.Errorf("alias %q does not resolve", alias)
			continue
		}
		if tool.Name != canonical {
			t.Errorf("alias %q resolved to %q, want %q", alias, tool.Name, canonical)
		}
	}
}

func TestEveryToolHasSchemaAndGroup(t *testing.T) {
	ts := newTestToolset(t, &fakePlatform{})
	for _, tool := range ts.All() {
		if tool.Description == "" {
			t.Errorf("tool %q has no description", tool.Name)
		}
		if tool.Group == "" {
			t.Errorf("tool %q has no group", tool.Name)
		}
		if !strings.HasPrefix(tool.Group, "group:") {
			t.Errorf("tool %q group %q lacks prefix", tool.Name, tool.Group)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %q has no input schema", tool.Name)
		}
		if tool.Execute == nil {
			t.Errorf("tool %q has no execute function", tool.Name)
		}
	}
}

func TestGetDocumentConcatenatesFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rspace.Document{
			GlobalID: "SD42",
			Name:     "PCR run",
			Fields: []rspace.DocumentField{
				{Content: "<p>setup</p>"},
				{Content: "<p>results</p>"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := rspace.NewClient(rspace.Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ts := NewToolset(client)

	result := runTool(t, ts, "get_document", map[string]any{"doc_id": "SD42"})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}
	content, _ := result.Details["content"].(string)
	if content != "<p>setup</p><p>results</p>" {
		t.Errorf("content = %q, want concatenated fields", content)
	}
}

func TestCreateSampleTranslatesQuantity(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/api/inventory/v1/samples", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding sample body: %v", err)
		}
		w.Write([]byte(`{"globalId":"SA1"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := rspace.NewClient(rspace.Config{BaseURL: srv.URL, APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ts := NewToolset(client)

	result := runTool(t, ts, "create_sample", map[string]any{
		"name":                 "plasmid prep",
		"tags":                 []any{"dna", "prep"},
		"subsample_count":      float64(3),
		"total_quantity_value": float64(2.5),
		"total_quantity_unit":  "ml",
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}

	if body["name"] != "plasmid prep" {
		t.Errorf("name = %v", body["name"])
	}
	if body["newSampleSubSamplesCount"] != float64(3) {
		t.Errorf("subsample count = %v, want 3", body["newSampleSubSamplesCount"])
	}
	quantity, _ := body["quantity"].(map[string]any)
	if quantity["numericValue"] != 2.5 || quantity["unitId"] != float64(4) {
		t.Errorf("quantity = %v, want value 2.5 unit 4", quantity)
	}
	tags, _ := body["tags"].([]any)
	if len(tags) != 2 {
		t.Fatalf("tags = %v, want 2 tag objects", body["tags"])
	}
	first, _ := tags[0].(map[string]any)
	if first["value"] != "dna" {
		t.Errorf("tag 0 = %v, want object with value", tags[0])
	}
}

func TestCreateSampleRejectsUnknownUnit(t *testing.T) {
	ts := newTestToolset(t, &fakePlatform{})
	result := runTool(t, ts, "create_sample", map[string]any{
		"name":                 "x",
		"total_quantity_value": float64(1),
		"total_quantity_unit":  "furlongs",
	})
	if !result.IsError() {
		t.Fatalf("result = %s, want error for unknown unit", result.Status)
	}
	if !strings.Contains(result.Error, "unknown quantity unit") {
		t.Errorf("error = %q", result.Error)
	}
}
