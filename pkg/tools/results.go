package tools

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// JSONResult creates a successful result from any payload, rendering it as
// a JSON text block with the decoded payload in Details.
func JSONResult(payload any) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload)}},
		Details: toMap(payload),
	}
}

// TextResult creates a simple text result.
func TextResult(text string) *Result {
	return &Result{
		Status:  ResultSuccess,
		Content: []ContentBlock{{Type: "text", Text: text}},
	}
}

// ErrorResult creates an error result. Input and platform errors are
// returned this way rather than as Go errors, so the agent host sees them as
// tool output.
func ErrorResult(toolName, message string) *Result {
	return &Result{
		Status:  ResultError,
		Content: []ContentBlock{{Type: "text", Text: message}},
		Details: map[string]any{"tool": toolName, "error": message},
		Error:   message,
	}
}

// ErrorResultf creates an error result with a formatted message.
func ErrorResultf(toolName, format string, args ...any) *Result {
	return ErrorResult(toolName, fmt.Sprintf(format, args...))
}

// ImageResult creates a result carrying image bytes, e.g. a rendered
// barcode.
func ImageResult(label string, data []byte, mimeType string) *Result {
	return &Result{
		Status: ResultSuccess,
		Content: []ContentBlock{
			{Type: "text", Text: label},
			{Type: "image", Data: base64.StdEncoding.EncodeToString(data), MimeType: mimeType},
		},
		Details: map[string]any{"label": label, "bytes": len(data)},
	}
}

// PartialResult creates a result for a batch where some items failed.
func PartialResult(payload any, errors []string) *Result {
	details := toMap(payload)
	if details == nil {
		details = map[string]any{}
	}
	details["errors"] = errors
	return &Result{
		Status:  ResultPartial,
		Content: []ContentBlock{{Type: "text", Text: mustJSON(payload)}},
		Details: details,
	}
}

// mustJSON marshals payload to JSON, returning an error payload on failure.
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal: %s"}`, err.Error())
	}
	return string(data)
}

// toMap converts a struct to map[string]any for the Details field.
func toMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
