package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// activityTools covers the audit trail and file attachments.
func (ts *Toolset) activityTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "get_audit_events",
				Description: "Retrieve the audit trail of actions performed in RSpace. Filter by username, a specific document's global ID, or an ISO 8601 date range.",
				Annotations: &mcp.ToolAnnotations{Title: "Audit Events", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"username": map[string]any{
							"type":        "string",
							"description": "Filter by a specific user's actions",
						},
						"global_id": map[string]any{
							"type":        "string",
							"description": "Filter by a specific document",
						},
						"date_from": map[string]any{
							"type":        "string",
							"description": "ISO 8601 start of the date range",
						},
						"date_to": map[string]any{
							"type":        "string",
							"description": "ISO 8601 end of the date range",
						},
					},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeAuditEvents,
		},
		{
			Tool: mcp.Tool{
				Name:        "download_file",
				Description: "Download a file attachment from RSpace to a local path.",
				Annotations: &mcp.ToolAnnotations{Title: "Download File"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"file_id": map[string]any{
							"type":        "integer",
							"description": "Numeric ID of the file attachment",
						},
						"file_path": map[string]any{
							"type":        "string",
							"description": "Local filesystem path to save the file to",
						},
					},
					"required": []string{"file_id", "file_path"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeDownloadFile,
		},
	}
}

func (ts *Toolset) executeAuditEvents(ctx context.Context, args map[string]any) (*Result, error) {
	aq := rspace.ActivityQuery{
		GlobalID: ReadStringDefault(args, "global_id", ""),
		DateFrom: ReadStringDefault(args, "date_from", ""),
		DateTo:   ReadStringDefault(args, "date_to", ""),
	}
	if user := ReadStringDefault(args, "username", ""); user != "" {
		aq.Users = []string{user}
	}
	resp, err := ts.eln.Activity(ctx, aq)
	if err != nil {
		return ErrorResultf("get_audit_events", "fetching activity: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeDownloadFile(ctx context.Context, args map[string]any) (*Result, error) {
	fileID, err := ReadInt(args, "file_id", true)
	if err != nil {
		return ErrorResult("download_file", err.Error()), nil
	}
	path, err := ReadString(args, "file_path", true)
	if err != nil {
		return ErrorResult("download_file", err.Error()), nil
	}

	data, err := ts.eln.DownloadFile(ctx, int64(fileID))
	if err != nil {
		return ErrorResultf("download_file", "downloading file %d: %v", fileID, err), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ErrorResultf("download_file", "creating directory: %v", err), nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ErrorResultf("download_file", "writing %s: %v", path, err), nil
	}
	return JSONResult(map[string]any{
		"file_id": fileID,
		"path":    path,
		"size":    len(data),
		"status":  fmt.Sprintf("saved %d bytes", len(data)),
	}), nil
}
