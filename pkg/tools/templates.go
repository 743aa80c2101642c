package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// templateTools covers reusable sample templates.
func (ts *Toolset) templateTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "create_sample_template",
				Description: "Create a reusable sample template defining the fields future samples of this kind should carry. Fields: [{\"name\": ..., \"type\": \"text|number|choice|radio|date\", ...}].",
				Annotations: &mcp.ToolAnnotations{Title: "Create Sample Template"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Template field definitions",
						},
						"default_unit": map[string]any{
							"type":        "string",
							"description": "Default quantity unit for samples made from this template (ml, mg, items, ...)",
						},
					},
					"required": []string{"name"},
				},
			},
			Group:   GroupTemplates,
			Execute: ts.executeCreateSampleTemplate,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_sample_template",
				Description: "Retrieve the full definition of a sample template.",
				Annotations: &mcp.ToolAnnotations{Title: "Get Sample Template", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"template_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID, e.g. \"IT12345\"",
						},
					},
					"required": []string{"template_id"},
				},
			},
			Group:   GroupTemplates,
			Execute: ts.executeGetSampleTemplate,
		},
		{
			Tool: mcp.Tool{
				Name:        "list_sample_templates",
				Description: "List available sample templates with pagination.",
				Annotations: &mcp.ToolAnnotations{Title: "List Sample Templates", ReadOnlyHint: true},
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
			Group:   GroupTemplates,
			Execute: ts.executeListSampleTemplates,
		},
	}
}

func (ts *Toolset) executeCreateSampleTemplate(ctx context.Context, args map[string]any) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("create_sample_template", err.Error()), nil
	}
	fields, err := ReadObjectList(args, "fields", false)
	if err != nil {
		return ErrorResult("create_sample_template", err.Error()), nil
	}

	template := map[string]any{"name": name}
	if len(fields) > 0 {
		template["fields"] = fields
	}
	if unit := ReadStringDefault(args, "default_unit", ""); unit != "" {
		quantity, err := rspace.QuantityOf(0, unit)
		if err != nil {
			return ErrorResult("create_sample_template", err.Error()), nil
		}
		template["defaultUnitId"] = quantity.UnitID
	}

	resp, err := ts.inv.CreateSampleTemplate(ctx, template)
	if err != nil {
		return ErrorResultf("create_sample_template", "creating template: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGetSampleTemplate(ctx context.Context, args map[string]any) (*Result, error) {
	templateID, err := ReadString(args, "template_id", true)
	if err != nil {
		return ErrorResult("get_sample_template", err.Error()), nil
	}
	resp, err := ts.inv.SampleTemplate(ctx, templateID)
	if err != nil {
		return ErrorResultf("get_sample_template", "fetching template %s: %v", templateID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeListSampleTemplates(ctx context.Context, args map[string]any) (*Result, error) {
	resp, err := ts.inv.SampleTemplates(ctx, rspace.Pagination{
		PageSize: ReadIntDefault(args, "page_size", 20),
	})
	if err != nil {
		return ErrorResultf("list_sample_templates", "listing templates: %v", err), nil
	}
	return JSONResult(resp), nil
}
