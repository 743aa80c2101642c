package mcpserver

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/tools"
)

func TestDecodeArguments(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string]any
	}{
		{"nil", nil, map[string]any{}},
		{"raw json", json.RawMessage(`{"a":1}`), map[string]any{"a": float64(1)}},
		{"empty raw json", json.RawMessage(nil), map[string]any{}},
		{"null raw json", json.RawMessage(`null`), map[string]any{}},
		{"map", map[string]any{"b": "x"}, map[string]any{"b": "x"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeArguments(tc.in)
			if err != nil {
				t.Fatalf("decodeArguments: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("key %q = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestDecodeArgumentsStructInput(t *testing.T) {
	got, err := decodeArguments(struct {
		DocID string `json:"doc_id"`
	}{DocID: "SD1"})
	if err != nil {
		t.Fatalf("decodeArguments: %v", err)
	}
	if got["doc_id"] != "SD1" {
		t.Errorf("got %v, want doc_id=SD1", got)
	}
}

func TestDecodeArgumentsRejectsNonObject(t *testing.T) {
	if _, err := decodeArguments(json.RawMessage(`[1,2]`)); err == nil {
		t.Fatal("expected error for array arguments")
	}
}

func TestToCallToolResultText(t *testing.T) {
	out := toCallToolResult(tools.TextResult("hello"))
	if out.IsError {
		t.Error("success result marked as error")
	}
	text, ok := out.Content[0].(*mcp.TextContent)
	if !ok || text.Text != "hello" {
		t.Errorf("content = %+v, want text hello", out.Content[0])
	}
}

func TestToCallToolResultError(t *testing.T) {
	out := toCallToolResult(tools.ErrorResult("some_tool", "it broke"))
	if !out.IsError {
		t.Error("error result not flagged")
	}
	text, ok := out.Content[0].(*mcp.TextContent)
	if !ok || text.Text != "it broke" {
		t.Errorf("content = %+v, want error text", out.Content[0])
	}
}

func TestToCallToolResultImage(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	out := toCallToolResult(tools.ImageResult("barcode", raw, "image/png"))

	if len(out.Content) != 2 {
		t.Fatalf("content blocks = %d, want label + image", len(out.Content))
	}
	img, ok := out.Content[1].(*mcp.ImageContent)
	if !ok {
		t.Fatalf("content[1] = %T, want image", out.Content[1])
	}
	if img.MIMEType != "image/png" {
		t.Errorf("mime = %q", img.MIMEType)
	}
	if base64.StdEncoding.EncodeToString(img.Data) != base64.StdEncoding.EncodeToString(raw) {
		t.Error("image bytes did not round-trip")
	}
}

func TestToCallToolResultEmptyContent(t *testing.T) {
	out := toCallToolResult(&tools.Result{Status: tools.ResultSuccess})
	if len(out.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1 fallback text block", len(out.Content))
	}
	if _, ok := out.Content[0].(*mcp.TextContent); !ok {
		t.Errorf("fallback content = %T, want text", out.Content[0])
	}
}
