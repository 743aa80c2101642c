package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/rspace-os/rspace-mcp/pkg/grid"
	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// movementTools covers moving inventory items into containers. The grid
// movers plan cell assignments locally and commit the whole batch in one
// platform call.
func (ts *Toolset) movementTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "move_items_to_list_container",
				Description: "Move inventory items into a list container. List containers have no positions, so items are simply added.",
				Annotations: &mcp.ToolAnnotations{Title: "Move to List Container"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"item_ids": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Global IDs of the items to move, e.g. [\"SS12345\", \"SA67890\"]",
						},
						"target_container_id": map[string]any{
							"type":        "string",
							"description": "Global ID of the destination list container, e.g. \"IC12345\"",
						},
					},
					"required": []string{"item_ids", "target_container_id"},
				},
			},
			Group:   GroupMovement,
			Execute: ts.executeMoveToListContainer,
		},
		{
			Tool: mcp.Tool{
				Name:        "move_items_to_grid_container_by_row",
				Description: "Move items into a grid container, filling cells left to right and then top to bottom from a start position. Dimensions are looked up automatically when not supplied.",
				Annotations: &mcp.ToolAnnotations{Title: "Move to Grid (Row Fill)"},
				InputSchema: gridMoveSchema(),
			},
			Group: GroupMovement,
			Execute: func(ctx context.Context, args map[string]any) (*Result, error) {
				return ts.moveToGrid(ctx, "move_items_to_grid_container_by_row", grid.ByRow, args)
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "move_items_to_grid_container_by_column",
				Description: "Move items into a grid container, filling cells top to bottom and then left to right from a start position. Dimensions are looked up automatically when not supplied.",
				Annotations: &mcp.ToolAnnotations{Title: "Move to Grid (Column Fill)"},
				InputSchema: gridMoveSchema(),
			},
			Group: GroupMovement,
			Execute: func(ctx context.Context, args map[string]any) (*Result, error) {
				return ts.moveToGrid(ctx, "move_items_to_grid_container_by_column", grid.ByColumn, args)
			},
		},
		{
			Tool: mcp.Tool{
				Name:        "move_items_to_specific_grid_locations",
				Description: "Move items to explicit (row, column) cells in a grid container. The locations list pairs with item_ids by position and must be the same length.",
				Annotations: &mcp.ToolAnnotations{Title: "Move to Grid (Explicit Cells)"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"item_ids": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Global IDs of the items to move",
						},
						"target_container_id": map[string]any{
							"type":        "string",
							"description": "Global ID of the destination grid container",
						},
						"locations": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"row":    map[string]any{"type": "integer"},
									"column": map[string]any{"type": "integer"},
								},
							},
							"description": "1-based target cells, one per item, e.g. [{\"row\": 1, \"column\": 3}]",
						},
						"total_rows": map[string]any{
							"type":        "integer",
							"description": "Grid row count; looked up from the container when omitted",
						},
						"total_columns": map[string]any{
							"type":        "integer",
							"description": "Grid column count; looked up from the container when omitted",
						},
					},
					"required": []string{"item_ids", "target_container_id", "locations"},
				},
			},
			Group: GroupMovement,
			Execute: func(ctx context.Context, args map[string]any) (*Result, error) {
				return ts.moveToGrid(ctx, "move_items_to_specific_grid_locations", grid.ByLocation, args)
			},
		},
	}
}

// gridMoveSchema is shared by the row-fill and column-fill movers.
func gridMoveSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"item_ids": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Global IDs of the items to move, in placement order",
			},
			"target_container_id": map[string]any{
				"type":        "string",
				"description": "Global ID of the destination grid container",
			},
			"start_row": map[string]any{
				"type":        "integer",
				"description": "1-based row to start filling from",
				"default":     1,
			},
			"start_column": map[string]any{
				"type":        "integer",
				"description": "1-based column to start filling from",
				"default":     1,
			},
			"total_rows": map[string]any{
				"type":        "integer",
				"description": "Grid row count; looked up from the container when omitted",
			},
			"total_columns": map[string]any{
				"type":        "integer",
				"description": "Grid column count; looked up from the container when omitted",
			},
		},
		"required": []string{"item_ids", "target_container_id"},
	}
}

func (ts *Toolset) executeMoveToListContainer(ctx context.Context, args map[string]any) (*Result, error) {
	itemIDs, err := ReadStringSlice(args, "item_ids", true)
	if err != nil {
		return ErrorResult("move_items_to_list_container", err.Error()), nil
	}
	if len(itemIDs) == 0 {
		return ErrorResult("move_items_to_list_container", "no items to move"), nil
	}
	containerID, err := ReadString(args, "target_container_id", true)
	if err != nil {
		return ErrorResult("move_items_to_list_container", err.Error()), nil
	}
	resp, err := ts.inv.AddItemsToListContainer(ctx, containerID, itemIDs)
	if err != nil {
		return ErrorResultf("move_items_to_list_container", "moving items: %v", err), nil
	}
	return JSONResult(map[string]any{
		"moved":     len(itemIDs),
		"container": containerID,
		"response":  resp,
	}), nil
}

// moveToGrid is the single path behind all three grid movers: resolve
// bounds, plan locally, commit the whole batch.
func (ts *Toolset) moveToGrid(ctx context.Context, toolName string, strategy grid.Strategy, args map[string]any) (*Result, error) {
	itemIDs, err := ReadStringSlice(args, "item_ids", true)
	if err != nil {
		return ErrorResult(toolName, err.Error()), nil
	}
	containerID, err := ReadString(args, "target_container_id", true)
	if err != nil {
		return ErrorResult(toolName, err.Error()), nil
	}

	bounds, err := ts.resolveBounds(ctx, containerID, args)
	if err != nil {
		return ErrorResultf(toolName, "resolving grid dimensions: %v", err), nil
	}

	req := grid.Request{
		Items:    itemIDs,
		Strategy: strategy,
		Bounds:   bounds,
	}
	switch strategy {
	case grid.ByLocation:
		req.Locations, err = ReadCoordList(args, "locations", true)
		if err != nil {
			return ErrorResult(toolName, err.Error()), nil
		}
	default:
		req.Start = grid.Coord{
			Row:    ReadIntDefault(args, "start_row", 1),
			Column: ReadIntDefault(args, "start_column", 1),
		}
	}

	placements, err := grid.Plan(req)
	if err != nil {
		return ErrorResult(toolName, err.Error()), nil
	}

	zerolog.Ctx(ctx).Debug().
		Str("container", containerID).
		Stringer("strategy", strategy).
		Int("items", len(placements)).
		Int("rows", bounds.Rows).
		Int("columns", bounds.Columns).
		Msg("committing grid placement")

	resp, err := ts.inv.CommitPlacement(ctx, containerID, placements)
	if err != nil {
		if errors.Is(err, rspace.ErrConflict) {
			return ErrorResultf(toolName, "target cells already occupied: %v", err), nil
		}
		return ErrorResultf(toolName, "committing placement: %v", err), nil
	}

	return JSONResult(map[string]any{
		"moved":      len(placements),
		"container":  containerID,
		"strategy":   strategy.String(),
		"placements": placementSummary(placements),
		"response":   resp,
	}), nil
}

// resolveBounds uses caller-supplied dimensions when both are present and
// asks the platform otherwise.
func (ts *Toolset) resolveBounds(ctx context.Context, containerID string, args map[string]any) (grid.Bounds, error) {
	rows, _ := ReadInt(args, "total_rows", false)
	columns, _ := ReadInt(args, "total_columns", false)
	if rows > 0 && columns > 0 {
		return grid.Bounds{Rows: rows, Columns: columns}, nil
	}
	return ts.inv.GridBounds(ctx, containerID)
}

func placementSummary(placements []grid.Placement) []map[string]any {
	out := make([]map[string]any, 0, len(placements))
	for _, p := range placements {
		out = append(out, map[string]any{
			"item_id": p.ItemID,
			"row":     p.Row,
			"column":  p.Column,
		})
	}
	return out
}
