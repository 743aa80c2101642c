package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// sampleTools covers sample creation, retrieval, and search.
func (ts *Toolset) sampleTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "create_sample",
				Description: "Register a new sample in the inventory with metadata and quantity tracking. Automatically creates the requested number of subsample aliquots.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Sample"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Sample name",
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"description": map[string]any{
							"type": "string",
						},
						"subsample_count": map[string]any{
							"type":        "integer",
							"description": "Number of subsample aliquots to create",
							"default":     1,
						},
						"total_quantity_value": map[string]any{
							"type":        "number",
							"description": "Total amount of the sample",
						},
						"total_quantity_unit": map[string]any{
							"type":        "string",
							"description": "Unit for the total amount (ml, mg, µl, items, ...)",
							"default":     "ml",
						},
					},
					"required": []string{"name"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeCreateSample,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_sample",
				Description: "Retrieve complete information about a sample, including its location and subsamples.",
				Annotations: &mcp.ToolAnnotations{Title: "Get Sample", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sample_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID, e.g. \"SA12345\"",
						},
					},
					"required": []string{"sample_id"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeGetSample,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_samples",
				Description: "List inventory samples with pagination and sorting.",
				Annotations: &mcp.ToolAnnotations{Title: "List Samples", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"page_size": map[string]any{
							"type":    "integer",
							"default": 20,
						},
						"order_by": map[string]any{
							"type":        "string",
							"description": "Sort field: lastModified, name, or created",
							"default":     "lastModified",
						},
						"sort_order": map[string]any{
							"type":    "string",
							"enum":    []string{"asc", "desc"},
							"default": "desc",
						},
					},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeListSamples,
		},
		{
			Tool: mcp.Tool{
				Name:        "duplicate_sample",
				Description: "Create an exact copy of an existing sample with fresh IDs and subsamples.",
				Annotations: &mcp.ToolAnnotations{Title: "Duplicate Sample"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sample_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the sample to copy",
						},
						"new_name": map[string]any{
							"type":        "string",
							"description": "Name for the copy",
						},
					},
					"required": []string{"sample_id"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeDuplicateSample,
		},
		{
			Tool: mcp.Tool{
				Name:        "split_subsample",
				Description: "Divide a subsample into multiple new aliquots, optionally assigning a quantity to each.",
				Annotations: &mcp.ToolAnnotations{Title: "Split Subsample"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subsample_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID, e.g. \"SS12345\"",
						},
						"num_new_subsamples": map[string]any{
							"type":        "integer",
							"description": "Total number of aliquots after the split (at least 2)",
						},
						"quantity_per_subsample": map[string]any{
							"type":        "number",
							"description": "Amount per new aliquot, in the parent's unit",
						},
					},
					"required": []string{"subsample_id", "num_new_subsamples"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeSplitSubsample,
		},
		{
			Tool: mcp.Tool{
				Name:        "add_note_to_subsample",
				Description: "Attach a note to a subsample: observations, handling instructions, or experimental remarks.",
				Annotations: &mcp.ToolAnnotations{Title: "Add Subsample Note"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subsample_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the subsample",
						},
						"note": map[string]any{
							"type": "string",
						},
					},
					"required": []string{"subsample_id", "note"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeAddSubsampleNote,
		},
		{
			Tool: mcp.Tool{
				Name:        "search_inventory",
				Description: "Search all inventory items by text. Optionally narrow to SAMPLE, SUBSAMPLE, CONTAINER, or TEMPLATE results.",
				Annotations: &mcp.ToolAnnotations{Title: "Search Inventory", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type": "string",
						},
						"result_type": map[string]any{
							"type": "string",
							"enum": []string{"SAMPLE", "SUBSAMPLE", "CONTAINER", "TEMPLATE"},
						},
					},
					"required": []string{"query"},
				},
			},
			Group:   GroupSamples,
			Execute: ts.executeSearchInventory,
		},
	}
}

func (ts *Toolset) executeCreateSample(ctx context.Context, args map[string]any) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("create_sample", err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", false)
	if err != nil {
		return ErrorResult("create_sample", err.Error()), nil
	}

	req := rspace.CreateSampleRequest{
		Name:           name,
		Description:    ReadStringDefault(args, "description", ""),
		Tags:           tags,
		SubsampleCount: ReadIntDefault(args, "subsample_count", 1),
	}

	// A quantity value plus a unit string becomes a platform quantity
	// object.
	if value, _ := ReadNumber(args, "total_quantity_value", false); value != 0 {
		unit := ReadStringDefault(args, "total_quantity_unit", "ml")
		quantity, err := rspace.QuantityOf(value, unit)
		if err != nil {
			return ErrorResult("create_sample", err.Error()), nil
		}
		req.Quantity = &quantity
	}

	resp, err := ts.inv.CreateSample(ctx, req)
	if err != nil {
		return ErrorResultf("create_sample", "creating sample: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGetSample(ctx context.Context, args map[string]any) (*Result, error) {
	sampleID, err := ReadString(args, "sample_id", true)
	if err != nil {
		return ErrorResult("get_sample", err.Error()), nil
	}
	resp, err := ts.inv.Sample(ctx, sampleID)
	if err != nil {
		return ErrorResultf("get_sample", "fetching sample %s: %v", sampleID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeListSamples(ctx context.Context, args map[string]any) (*Result, error) {
	p := rspace.Pagination{
		PageSize:  ReadIntDefault(args, "page_size", 20),
		OrderBy:   ReadStringDefault(args, "order_by", "lastModified"),
		SortOrder: ReadStringDefault(args, "sort_order", "desc"),
	}
	resp, err := ts.inv.Samples(ctx, p)
	if err != nil {
		return ErrorResultf("list_samples", "listing samples: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeDuplicateSample(ctx context.Context, args map[string]any) (*Result, error) {
	sampleID, err := ReadString(args, "sample_id", true)
	if err != nil {
		return ErrorResult("duplicate_sample", err.Error()), nil
	}
	resp, err := ts.inv.DuplicateSample(ctx, sampleID, ReadStringDefault(args, "new_name", ""))
	if err != nil {
		return ErrorResultf("duplicate_sample", "duplicating sample %s: %v", sampleID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeSplitSubsample(ctx context.Context, args map[string]any) (*Result, error) {
	subsampleID, err := ReadString(args, "subsample_id", true)
	if err != nil {
		return ErrorResult("split_subsample", err.Error()), nil
	}
	numNew, err := ReadInt(args, "num_new_subsamples", true)
	if err != nil {
		return ErrorResult("split_subsample", err.Error()), nil
	}
	quantityPer, _ := ReadNumber(args, "quantity_per_subsample", false)
	resp, err := ts.inv.SplitSubsample(ctx, subsampleID, numNew, quantityPer)
	if err != nil {
		return ErrorResultf("split_subsample", "splitting subsample %s: %v", subsampleID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeAddSubsampleNote(ctx context.Context, args map[string]any) (*Result, error) {
	subsampleID, err := ReadString(args, "subsample_id", true)
	if err != nil {
		return ErrorResult("add_note_to_subsample", err.Error()), nil
	}
	note, err := ReadString(args, "note", true)
	if err != nil {
		return ErrorResult("add_note_to_subsample", err.Error()), nil
	}
	resp, err := ts.inv.AddSubsampleNote(ctx, subsampleID, note)
	if err != nil {
		return ErrorResultf("add_note_to_subsample", "adding note to %s: %v", subsampleID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeSearchInventory(ctx context.Context, args map[string]any) (*Result, error) {
	query, err := ReadString(args, "query", true)
	if err != nil {
		return ErrorResult("search_inventory", err.Error()), nil
	}
	resp, err := ts.inv.Search(ctx, query, ReadStringDefault(args, "result_type", ""))
	if err != nil {
		return ErrorResultf("search_inventory", "searching inventory: %v", err), nil
	}
	return JSONResult(resp), nil
}
