package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// containerTools covers container creation and inspection.
func (ts *Toolset) containerTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "create_list_container",
				Description: "Create a simple list-based container (box, shelf, folder) without positional addressing. Optionally nest it inside a parent container.",
				Annotations: &mcp.ToolAnnotations{Title: "Create List Container"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"description": map[string]any{
							"type": "string",
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"can_store_containers": map[string]any{
							"type":    "boolean",
							"default": true,
						},
						"can_store_samples": map[string]any{
							"type":    "boolean",
							"default": true,
						},
						"parent_container_id": map[string]any{
							"type":        "integer",
							"description": "Container to nest this one inside",
						},
					},
					"required": []string{"name"},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeCreateListContainer,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_grid_container",
				Description: "Create a grid container with fixed row/column dimensions, e.g. 8x12 for a 96-well plate. Items are placed at specific (row, column) coordinates.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Grid Container"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"rows": map[string]any{
							"type":        "integer",
							"description": "Number of rows (at least 1)",
						},
						"columns": map[string]any{
							"type":        "integer",
							"description": "Number of columns (at least 1)",
						},
						"description": map[string]any{
							"type": "string",
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"can_store_containers": map[string]any{
							"type":    "boolean",
							"default": true,
						},
						"can_store_samples": map[string]any{
							"type":    "boolean",
							"default": true,
						},
						"parent_container_id": map[string]any{
							"type": "integer",
						},
					},
					"required": []string{"name", "rows", "columns"},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeCreateGridContainer,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_container",
				Description: "Retrieve container information, optionally including its contents. Skipping content is faster for large containers.",
				Annotations: &mcp.ToolAnnotations{Title: "Get Container", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"container_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID, e.g. \"IC12345\"",
						},
						"include_content": map[string]any{
							"type":    "boolean",
							"default": false,
						},
					},
					"required": []string{"container_id"},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeGetContainer,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_containers",
				Description: "List top-level containers (those not nested inside another container).",
				Annotations: &mcp.ToolAnnotations{Title: "List Containers", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"page_size": map[string]any{
							"type":    "integer",
							"default": 20,
						},
					},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeListContainers,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_workbenches",
				Description: "List all workbenches: the special containers representing physical or logical workspaces.",
				Annotations: &mcp.ToolAnnotations{Title: "Workbenches", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeGetWorkbenches,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_container_summary",
				Description: "Retrieve container metadata without loading its contents. Fast lookup for name, type, and capacity.",
				Annotations: &mcp.ToolAnnotations{Title: "Container Summary", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"container_id": map[string]any{
							"type": "string",
						},
					},
					"required": []string{"container_id"},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeContainerSummary,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_container_contents_only",
				Description: "Retrieve just the items stored in a container, without the container metadata.",
				Annotations: &mcp.ToolAnnotations{Title: "Container Contents", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"container_id": map[string]any{
							"type": "string",
						},
					},
					"required": []string{"container_id"},
				},
			},
			Group:   GroupContainers,
			Execute: ts.executeContainerContents,
		},
	}
}

func (ts *Toolset) executeCreateListContainer(ctx context.Context, args map[string]any) (*Result, error) {
	return ts.createContainer(ctx, "create_list_container", args, 0, 0)
}

func (ts *Toolset) executeCreateGridContainer(ctx context.Context, args map[string]any) (*Result, error) {
	rows, err := ReadInt(args, "rows", true)
	if err != nil {
		return ErrorResult("create_grid_container", err.Error()), nil
	}
	columns, err := ReadInt(args, "columns", true)
	if err != nil {
		return ErrorResult("create_grid_container", err.Error()), nil
	}
	return ts.createContainer(ctx, "create_grid_container", args, rows, columns)
}

func (ts *Toolset) createContainer(ctx context.Context, toolName string, args map[string]any, rows, columns int) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult(toolName, err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", false)
	if err != nil {
		return ErrorResult(toolName, err.Error()), nil
	}
	parentID, _ := ReadInt(args, "parent_container_id", false)
	resp, err := ts.inv.CreateContainer(ctx, rspace.CreateContainerRequest{
		Name:               name,
		Description:        ReadStringDefault(args, "description", ""),
		Tags:               tags,
		Rows:               rows,
		Columns:            columns,
		CanStoreContainers: ReadBool(args, "can_store_containers", true),
		CanStoreSamples:    ReadBool(args, "can_store_samples", true),
		ParentContainerID:  int64(parentID),
	})
	if err != nil {
		return ErrorResultf(toolName, "creating container: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGetContainer(ctx context.Context, args map[string]any) (*Result, error) {
	containerID, err := ReadString(args, "container_id", true)
	if err != nil {
		return ErrorResult("get_container", err.Error()), nil
	}
	resp, err := ts.inv.Container(ctx, containerID, ReadBool(args, "include_content", false))
	if err != nil {
		return ErrorResultf("get_container", "fetching container %s: %v", containerID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeListContainers(ctx context.Context, args map[string]any) (*Result, error) {
	resp, err := ts.inv.TopLevelContainers(ctx, rspace.Pagination{
		PageSize: ReadIntDefault(args, "page_size", 20),
	})
	if err != nil {
		return ErrorResultf("list_containers", "listing containers: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGetWorkbenches(ctx context.Context, args map[string]any) (*Result, error) {
	resp, err := ts.inv.Workbenches(ctx)
	if err != nil {
		return ErrorResultf("get_workbenches", "listing workbenches: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeContainerSummary(ctx context.Context, args map[string]any) (*Result, error) {
	containerID, err := ReadString(args, "container_id", true)
	if err != nil {
		return ErrorResult("get_container_summary", err.Error()), nil
	}
	resp, err := ts.inv.Container(ctx, containerID, false)
	if err != nil {
		return ErrorResultf("get_container_summary", "fetching container %s: %v", containerID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeContainerContents(ctx context.Context, args map[string]any) (*Result, error) {
	containerID, err := ReadString(args, "container_id", true)
	if err != nil {
		return ErrorResult("get_container_contents_only", err.Error()), nil
	}
	container, err := ts.inv.Container(ctx, containerID, true)
	if err != nil {
		return ErrorResultf("get_container_contents_only", "fetching container %s: %v", containerID, err), nil
	}
	return JSONResult(map[string]any{"locations": container.Stored}), nil
}
