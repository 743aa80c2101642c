package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// utilityTools covers cross-cutting inventory operations: renaming, custom
// metadata, barcodes, and batch helpers.
func (ts *Toolset) utilityTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "rename_inventory_item",
				Description: "Rename any inventory item (sample, subsample, container, or template) by its global ID.",
				Annotations: &mcp.ToolAnnotations{Title: "Rename Inventory Item"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"item_id": map[string]any{
							"type":        "string",
							"description": "Global ID with prefix: SA (sample), SS (subsample), IC (container), IT (template)",
						},
						"new_name": map[string]any{
							"type": "string",
						},
					},
					"required": []string{"item_id", "new_name"},
				},
			},
			Group:   GroupUtility,
			Execute: ts.executeRenameItem,
		},
		{
			Tool: mcp.Tool{
				Name:        "add_extra_fields_to_item",
				Description: "Attach custom metadata fields to any inventory item. Fields: [{\"name\": ..., \"type\": \"text\" or \"number\", \"content\": ...}].",
				Annotations: &mcp.ToolAnnotations{Title: "Add Extra Fields"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"item_id": map[string]any{
							"type":        "string",
							"description": "Global ID of the item",
						},
						"fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Extra field definitions",
						},
					},
					"required": []string{"item_id", "fields"},
				},
			},
			Group:   GroupUtility,
			Execute: ts.executeAddExtraFields,
		},
		{
			Tool: mcp.Tool{
				Name:        "generate_barcode",
				Description: "Render a scannable barcode or QR code image (PNG) for an inventory item's global ID.",
				Annotations: &mcp.ToolAnnotations{Title: "Generate Barcode", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"content": map[string]any{
							"type":        "string",
							"description": "The global ID (or other text) to encode",
						},
						"barcode_type": map[string]any{
							"type":    "string",
							"enum":    []string{"BARCODE", "QR"},
							"default": "BARCODE",
						},
					},
					"required": []string{"content"},
				},
			},
			Group:   GroupUtility,
			Execute: ts.executeGenerateBarcode,
		},
		{
			Tool: mcp.Tool{
				Name:        "bulk_create_samples",
				Description: "Create multiple samples in one call. Samples: [{\"name\": ..., \"description\": ..., \"tags\": [...], \"subsample_count\": ...}]. Reports per-sample failures without aborting the batch.",
				Annotations: &mcp.ToolAnnotations{Title: "Bulk Create Samples"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"samples": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Sample definitions, each at minimum a name",
						},
					},
					"required": []string{"samples"},
				},
			},
			Group:   GroupUtility,
			Execute: ts.executeBulkCreateSamples,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_recent_samples_summary",
				Description: "List samples created within the last N days as a lightweight summary: global ID, name, and creation date only.",
				Annotations: &mcp.ToolAnnotations{Title: "Recent Samples", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"days_back": map[string]any{
							"type":        "integer",
							"description": "How many days of history to include",
							"default":     7,
						},
						"page_size": map[string]any{
							"type":    "integer",
							"default": 50,
						},
					},
				},
			},
			Group:   GroupUtility,
			Execute: ts.executeRecentSamplesSummary,
		},
	}
}

func (ts *Toolset) executeRenameItem(ctx context.Context, args map[string]any) (*Result, error) {
	itemID, err := ReadString(args, "item_id", true)
	if err != nil {
		return ErrorResult("rename_inventory_item", err.Error()), nil
	}
	newName, err := ReadString(args, "new_name", true)
	if err != nil {
		return ErrorResult("rename_inventory_item", err.Error()), nil
	}
	resp, err := ts.inv.Rename(ctx, itemID, newName)
	if err != nil {
		return ErrorResultf("rename_inventory_item", "renaming %s: %v", itemID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeAddExtraFields(ctx context.Context, args map[string]any) (*Result, error) {
	itemID, err := ReadString(args, "item_id", true)
	if err != nil {
		return ErrorResult("add_extra_fields_to_item", err.Error()), nil
	}
	objs, err := ReadObjectList(args, "fields", true)
	if err != nil {
		return ErrorResult("add_extra_fields_to_item", err.Error()), nil
	}

	fields := make([]rspace.ExtraField, 0, len(objs))
	for _, obj := range objs {
		name, _ := ReadString(obj, "name", false)
		content, _ := ReadString(obj, "content", false)
		fields = append(fields, rspace.ExtraField{
			Name:    name,
			Type:    rspace.ExtraFieldType(ReadStringDefault(obj, "type", "text")),
			Content: content,
		})
	}

	resp, err := ts.inv.AddExtraFields(ctx, itemID, fields)
	if err != nil {
		return ErrorResultf("add_extra_fields_to_item", "updating %s: %v", itemID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGenerateBarcode(ctx context.Context, args map[string]any) (*Result, error) {
	content, err := ReadString(args, "content", true)
	if err != nil {
		return ErrorResult("generate_barcode", err.Error()), nil
	}
	format := rspace.BarcodeFormat(ReadStringDefault(args, "barcode_type", string(rspace.BarcodeLinear)))
	data, err := ts.inv.Barcode(ctx, content, format)
	if err != nil {
		return ErrorResultf("generate_barcode", "rendering barcode for %s: %v", content, err), nil
	}
	return ImageResult(fmt.Sprintf("%s barcode for %s", format, content), data, "image/png"), nil
}

func (ts *Toolset) executeBulkCreateSamples(ctx context.Context, args map[string]any) (*Result, error) {
	defs, err := ReadObjectList(args, "samples", true)
	if err != nil {
		return ErrorResult("bulk_create_samples", err.Error()), nil
	}
	if len(defs) == 0 {
		return ErrorResult("bulk_create_samples", "no samples to create"), nil
	}

	log := zerolog.Ctx(ctx)
	created := make([]map[string]any, 0, len(defs))
	var failures []string
	for i, def := range defs {
		name, err := ReadString(def, "name", true)
		if err != nil {
			failures = append(failures, fmt.Sprintf("sample %d: %v", i, err))
			continue
		}
		tags, _ := ReadStringSlice(def, "tags", false)
		resp, err := ts.inv.CreateSample(ctx, rspace.CreateSampleRequest{
			Name:           name,
			Description:    ReadStringDefault(def, "description", ""),
			Tags:           tags,
			SubsampleCount: ReadIntDefault(def, "subsample_count", 1),
		})
		if err != nil {
			log.Warn().Err(err).Str("sample", name).Msg("bulk create: sample failed")
			failures = append(failures, fmt.Sprintf("sample %q: %v", name, err))
			continue
		}
		created = append(created, resp)
	}

	payload := map[string]any{
		"requested": len(defs),
		"created":   len(created),
		"samples":   created,
	}
	if len(failures) == 0 {
		return JSONResult(payload), nil
	}
	if len(created) == 0 {
		return ErrorResultf("bulk_create_samples", "all %d samples failed: %s", len(defs), failures[0]), nil
	}
	return PartialResult(payload, failures), nil
}

func (ts *Toolset) executeRecentSamplesSummary(ctx context.Context, args map[string]any) (*Result, error) {
	daysBack := ReadIntDefault(args, "days_back", 7)
	list, err := ts.inv.Samples(ctx, rspace.Pagination{
		PageSize:  ReadIntDefault(args, "page_size", 50),
		OrderBy:   "created",
		SortOrder: "desc",
	})
	if err != nil {
		return ErrorResultf("get_recent_samples_summary", "listing samples: %v", err), nil
	}

	cutoff := time.Now().AddDate(0, 0, -daysBack)
	summaries := make([]map[string]any, 0, len(list.Samples))
	for _, s := range list.Samples {
		created, err := time.Parse(time.RFC3339, s.Created)
		if err != nil {
			zerolog.Ctx(ctx).Warn().
				Str("sample", s.GlobalID).
				Str("created", s.Created).
				Msg("skipping sample with unparsable creation date")
			continue
		}
		if created.Before(cutoff) {
			// Sorted newest first, so everything after this is older.
			break
		}
		summaries = append(summaries, map[string]any{
			"globalId": s.GlobalID,
			"name":     s.Name,
			"created":  s.Created,
		})
	}
	return JSONResult(map[string]any{
		"days_back": daysBack,
		"count":     len(summaries),
		"samples":   summaries,
	}), nil
}
