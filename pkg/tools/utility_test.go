package tools

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

func TestRecentSamplesSummaryFiltersByCutoff(t *testing.T) {
	now := time.Now().UTC()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/inventory/v1/samples", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(rspace.SampleList{
			TotalHits: 4,
			Samples: []rspace.Sample{
				{GlobalID: "SA1", Name: "fresh", Created: now.Format(time.RFC3339)},
				{GlobalID: "SA2", Name: "undated", Created: "not-a-date"},
				{GlobalID: "SA3", Name: "recent", Created: now.AddDate(0, 0, -2).Format(time.RFC3339)},
				{GlobalID: "SA4", Name: "old", Created: now.AddDate(0, 0, -30).Format(time.RFC3339)},
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

	result := runTool(t, ts, "get_recent_samples_summary", map[string]any{
		"days_back": float64(7),
	})
	if !result.IsSuccess() {
		t.Fatalf("result = %s: %s", result.Status, result.Error)
	}

	if count, _ := result.Details["count"].(float64); count != 2 {
		t.Errorf("count = %v, want 2 (fresh and recent)", result.Details["count"])
	}
	summaries, _ := result.Details["samples"].([]any)
	if len(summaries) != 2 {
		t.Fatalf("samples = %d entries, want 2", len(summaries))
	}
	first, _ := summaries[0].(map[string]any)
	second, _ := summaries[1].(map[string]any)
	if first["globalId"] != "SA1" || second["globalId"] != "SA3" {
		t.Errorf("summary IDs = %v, %v; unparsable and stale entries must be excluded",
			first["globalId"], second["globalId"])
	}
}
