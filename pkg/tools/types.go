// Package tools defines the RSpace tool surface exposed to MCP agent hosts.
// Every tool is a thin, typed pass-through to the platform client: parameter
// translation on the way in, response reshaping on the way out, and no
// platform logic of its own.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool wraps an MCP tool definition with its local execution logic.
type Tool struct {
	mcp.Tool        // Name, Description, InputSchema
	Group    string // group:eln, group:samples, etc.
	Execute  func(ctx context.Context, input map[string]any) (*Result, error)
}

// Result is the structured outcome of one tool invocation: an explicit
// success/failure tag with a typed payload, never a shape the caller has to
// probe for.
type Result struct {
	Status  ResultStatus   `json:"status"`            // success, error, partial
	Content []ContentBlock `json:"content,omitempty"` // text and image blocks
	Details map[string]any `json:"details,omitempty"` // structured payload for parsing
	Error   string         `json:"error,omitempty"`
}

// ContentBlock carries one piece of tool output.
type ContentBlock struct {
	Type     string `json:"type"`               // "text" or "image"
	Text     string `json:"text,omitempty"`     // for text blocks
	Data     string `json:"data,omitempty"`     // base64 for images
	MimeType string `json:"mimeType,omitempty"` // for images
}

// ResultStatus indicates the outcome of tool execution.
type ResultStatus string

const (
	// ResultSuccess indicates the tool completed successfully.
	ResultSuccess ResultStatus = "success"
	// ResultError indicates the tool failed with an error.
	ResultError ResultStatus = "error"
	// ResultPartial indicates some items of a batch succeeded and some failed.
	ResultPartial ResultStatus = "partial"
)

// ToolInfo is listing metadata for one tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// Text returns the first text block, or the error message for failed
// results.
func (r *Result) Text() string {
	if r.Status == ResultError && r.Error != "" {
		return r.Error
	}
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}

// IsSuccess reports whether the result indicates success.
func (r *Result) IsSuccess() bool {
	return r.Status == ResultSuccess
}

// IsError reports whether the result indicates an error.
func (r *Result) IsError() bool {
	return r.Status == ResultError
}
