package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// formTools covers form templates and structured document creation.
func (ts *Toolset) formTools() []*Tool {
	tools := []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "get_forms",
				Description: "List available custom forms for structured document creation. Use the query parameter to search form names.",
				Annotations: &mcp.ToolAnnotations{Title: "List Forms", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "Search term for form names/descriptions",
						},
						"order_by": map[string]any{
							"type":        "string",
							"description": "Sort order, e.g. \"lastModified desc\"",
							"default":     "lastModified desc",
						},
						"page_number": map[string]any{
							"type":    "integer",
							"default": 0,
						},
						"page_size": map[string]any{
							"type":    "integer",
							"default": 20,
						},
					},
				},
			},
			Group:   GroupForms,
			Execute: ts.executeGetForms,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_form",
				Description: "Retrieve the complete definition of a form template, including its field specifications.",
				Annotations: &mcp.ToolAnnotations{Title: "Get Form", ReadOnlyHint: true},
				InputSchema: formIDSchema(),
			},
			Group:   GroupForms,
			Execute: ts.executeGetForm,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_form",
				Description: "Create a new custom form template for structured data entry. Fields: [{\"name\": ..., \"type\": \"String|Text|Number|Radio|Date|Choice\", \"mandatory\": true/false, \"defaultValue\": ...}]. The form starts in the NEW state and must be published before use.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Form"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Form name",
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Field definitions",
						},
					},
					"required": []string{"name"},
				},
			},
			Group:   GroupForms,
			Execute: ts.executeCreateForm,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_document_from_form",
				Description: "Create a structured document using a published form template, optionally pre-populating its fields.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Document From Form"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"form_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the form",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "Document name",
						},
						"parent_folder_id": map[string]any{
							"type":        "integer",
							"description": "Folder or notebook to file the document under",
						},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Initial field content",
						},
					},
					"required": []string{"form_id"},
				},
			},
			Group:   GroupForms,
			Execute: ts.executeCreateDocumentFromForm,
		},
		{
			Tool: mcp.Tool{
				Name:        "delete_form",
				Description: "Permanently delete a form template. Only works for forms still in the NEW state; cannot be undone.",
				Annotations: &mcp.ToolAnnotations{Title: "Delete Form"},
				InputSchema: formIDSchema(),
			},
			Group:   GroupForms,
			Execute: ts.executeDeleteForm,
		},
	}

	// The four lifecycle actions share a shape; generate them.
	lifecycle := []struct {
		name, title, desc string
		call              func(context.Context, string) (map[string]any, error)
	}{
		{"publish_form", "Publish Form", "Make a form available for creating documents.", ts.eln.PublishForm},
		{"unpublish_form", "Unpublish Form", "Hide a form from document creation without deleting it.", ts.eln.UnpublishForm},
		{"share_form", "Share Form", "Share a form with your groups for collaborative use.", ts.eln.ShareForm},
		{"unshare_form", "Unshare Form", "Remove form sharing and make it private again.", ts.eln.UnshareForm},
	}
	for _, lc := range lifecycle {
		call := lc.call
		name := lc.name
		tools = append(tools, &Tool{
			Tool: mcp.Tool{
				Name:        name,
				Description: lc.desc,
				Annotations: &mcp.ToolAnnotations{Title: lc.title},
				InputSchema: formIDSchema(),
			},
			Group: GroupForms,
			Execute: func(ctx context.Context, args map[string]any) (*Result, error) {
				formID, err := ReadString(args, "form_id", true)
				if err != nil {
					return ErrorResult(name, err.Error()), nil
				}
				resp, err := call(ctx, formID)
				if err != nil {
					return ErrorResultf(name, "form %s: %v", formID, err), nil
				}
				return JSONResult(resp), nil
			},
		})
	}
	return tools
}

func formIDSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"form_id": map[string]any{
				"type":        "string",
				"description": "Numeric ID or global ID of the form",
			},
		},
		"required": []string{"form_id"},
	}
}

func (ts *Toolset) executeGetForms(ctx context.Context, args map[string]any) (*Result, error) {
	fq := rspace.FormQuery{
		Query:      ReadStringDefault(args, "query", ""),
		OrderBy:    ReadStringDefault(args, "order_by", "lastModified desc"),
		PageNumber: ReadIntDefault(args, "page_number", 0),
		PageSize:   ReadIntDefault(args, "page_size", 20),
	}
	resp, err := ts.eln.Forms(ctx, fq)
	if err != nil {
		return ErrorResultf("get_forms", "listing forms: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeGetForm(ctx context.Context, args map[string]any) (*Result, error) {
	formID, err := ReadString(args, "form_id", true)
	if err != nil {
		return ErrorResult("get_form", err.Error()), nil
	}
	resp, err := ts.eln.Form(ctx, formID)
	if err != nil {
		return ErrorResultf("get_form", "fetching form %s: %v", formID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeCreateForm(ctx context.Context, args map[string]any) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("create_form", err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", false)
	if err != nil {
		return ErrorResult("create_form", err.Error()), nil
	}
	fields, err := ReadObjectList(args, "fields", false)
	if err != nil {
		return ErrorResult("create_form", err.Error()), nil
	}
	resp, err := ts.eln.CreateForm(ctx, name, tags, fields)
	if err != nil {
		return ErrorResultf("create_form", "creating form: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeCreateDocumentFromForm(ctx context.Context, args map[string]any) (*Result, error) {
	formID, err := ReadString(args, "form_id", true)
	if err != nil {
		return ErrorResult("create_document_from_form", err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", false)
	if err != nil {
		return ErrorResult("create_document_from_form", err.Error()), nil
	}
	fields, err := readFieldPayloads(args, "fields")
	if err != nil {
		return ErrorResult("create_document_from_form", err.Error()), nil
	}
	parentID, _ := ReadInt(args, "parent_folder_id", false)
	resp, err := ts.eln.CreateDocument(ctx, rspace.CreateDocumentRequest{
		Name:           ReadStringDefault(args, "name", ""),
		ParentFolderID: int64(parentID),
		FormID:         formID,
		Tags:           tags,
		Fields:         fields,
	})
	if err != nil {
		return ErrorResultf("create_document_from_form", "creating document: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeDeleteForm(ctx context.Context, args map[string]any) (*Result, error) {
	formID, err := ReadString(args, "form_id", true)
	if err != nil {
		return ErrorResult("delete_form", err.Error()), nil
	}
	if err := ts.eln.DeleteForm(ctx, formID); err != nil {
		return ErrorResultf("delete_form", "deleting form %s: %v", formID, err), nil
	}
	return JSONResult(map[string]any{"deleted": formID}), nil
}
