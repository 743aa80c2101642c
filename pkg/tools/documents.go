package tools

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// documentTools covers documents, notebooks, and document metadata.
func (ts *Toolset) documentTools() []*Tool {
	return []*Tool{
		{
			Tool: mcp.Tool{
				Name:        "rspace_status",
				Description: "Check that the RSpace server is accessible and running. Call this first to verify connectivity.",
				Annotations: &mcp.ToolAnnotations{Title: "RSpace Status", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeStatus,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_documents",
				Description: "List recent RSpace documents with pagination. Returns document metadata, not full content. Maximum 200 per call.",
				Annotations: &mcp.ToolAnnotations{Title: "List Documents", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"page_size": map[string]any{
							"type":        "integer",
							"description": "Number of documents to return (1-200)",
							"default":     20,
						},
					},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeGetDocuments,
		},
		{
			Tool: mcp.Tool{
				Name:        "get_document",
				Description: "Retrieve the complete content of a single document. The content of all fields is concatenated for easier reading.",
				Annotations: &mcp.ToolAnnotations{Title: "Get Document", ReadOnlyHint: true},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"doc_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the document, e.g. \"SD12345\"",
						},
					},
					"required": []string{"doc_id"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeGetDocument,
		},
		{
			Tool: mcp.Tool{
				Name:        "update_document",
				Description: "Update an existing document's name, tags, form, or field content. Fields format: [{\"id\": field_id, \"content\": \"new HTML content\"}].",
				Annotations: &mcp.ToolAnnotations{Title: "Update Document"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"document_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the document",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "New document name",
						},
						"tags": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Replacement tag list",
						},
						"form_id": map[string]any{
							"type":        "string",
							"description": "Global ID of the form to structure the document by",
						},
						"fields": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "object"},
							"description": "Field updates: [{\"id\": field_id, \"content\": \"...\"}]",
						},
					},
					"required": []string{"document_id"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeUpdateDocument,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_notebook",
				Description: "Create a new electronic lab notebook for organizing related experiments and entries.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Notebook"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "The name of the notebook to create",
						},
					},
					"required": []string{"name"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeCreateNotebook,
		},
		{
			Tool: mcp.Tool{
				Name:        "create_notebook_entry",
				Description: "Add a new entry to an existing notebook. Content supports HTML and plain text.",
				Annotations: &mcp.ToolAnnotations{Title: "Create Notebook Entry"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "The name of the notebook entry",
						},
						"text_content": map[string]any{
							"type":        "string",
							"description": "HTML or plain text content",
						},
						"notebook_id": map[string]any{
							"type":        "integer",
							"description": "The ID of the notebook to add the entry to",
						},
					},
					"required": []string{"name", "text_content", "notebook_id"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeCreateNotebookEntry,
		},
		{
			Tool: mcp.Tool{
				Name:        "tag_document",
				Description: "Add tags to a document or notebook entry for organization and searchability.",
				Annotations: &mcp.ToolAnnotations{Title: "Tag Document"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"doc_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the document",
						},
						"tags": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "One or more tags",
						},
					},
					"required": []string{"doc_id", "tags"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeTagDocument,
		},
		{
			Tool: mcp.Tool{
				Name:        "rename_document",
				Description: "Change the name of a document or notebook entry.",
				Annotations: &mcp.ToolAnnotations{Title: "Rename Document"},
				InputSchema: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"doc_id": map[string]any{
							"type":        "string",
							"description": "Numeric ID or global ID of the document",
						},
						"name": map[string]any{
							"type":        "string",
							"description": "The new name",
						},
					},
					"required": []string{"doc_id", "name"},
				},
			},
			Group:   GroupELN,
			Execute: ts.executeRenameDocument,
		},
	}
}

func (ts *Toolset) executeStatus(ctx context.Context, args map[string]any) (*Result, error) {
	msg, err := ts.eln.Status(ctx)
	if err != nil {
		return ErrorResultf("rspace_status", "status check failed: %v", err), nil
	}
	return TextResult(msg), nil
}

func (ts *Toolset) executeGetDocuments(ctx context.Context, args map[string]any) (*Result, error) {
	pageSize := ReadIntDefault(args, "page_size", 20)
	docs, err := ts.eln.Documents(ctx, pageSize)
	if err != nil {
		return ErrorResultf("get_documents", "listing documents: %v", err), nil
	}
	return JSONResult(docs), nil
}

func (ts *Toolset) executeGetDocument(ctx context.Context, args map[string]any) (*Result, error) {
	docID, err := ReadString(args, "doc_id", true)
	if err != nil {
		return ErrorResult("get_document", err.Error()), nil
	}
	doc, err := ts.eln.Document(ctx, docID)
	if err != nil {
		return ErrorResultf("get_document", "fetching document %s: %v", docID, err), nil
	}

	// Concatenate field content so the caller gets one readable body.
	var content strings.Builder
	for _, fld := range doc.Fields {
		content.WriteString(fld.Content)
	}
	return JSONResult(map[string]any{
		"globalId": doc.GlobalID,
		"name":     doc.Name,
		"created":  doc.Created,
		"tags":     doc.Tags,
		"content":  content.String(),
	}), nil
}

func (ts *Toolset) executeUpdateDocument(ctx context.Context, args map[string]any) (*Result, error) {
	docID, err := ReadString(args, "document_id", true)
	if err != nil {
		return ErrorResult("update_document", err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", false)
	if err != nil {
		return ErrorResult("update_document", err.Error()), nil
	}
	fields, err := readFieldPayloads(args, "fields")
	if err != nil {
		return ErrorResult("update_document", err.Error()), nil
	}
	upd := rspace.DocumentUpdate{
		Name:   ReadStringDefault(args, "name", ""),
		Tags:   tags,
		FormID: ReadStringDefault(args, "form_id", ""),
		Fields: fields,
	}
	resp, err := ts.eln.UpdateDocument(ctx, docID, upd)
	if err != nil {
		return ErrorResultf("update_document", "updating document %s: %v", docID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeCreateNotebook(ctx context.Context, args map[string]any) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("create_notebook", err.Error()), nil
	}
	resp, err := ts.eln.CreateFolder(ctx, name, true)
	if err != nil {
		return ErrorResultf("create_notebook", "creating notebook: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeCreateNotebookEntry(ctx context.Context, args map[string]any) (*Result, error) {
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("create_notebook_entry", err.Error()), nil
	}
	text, err := ReadString(args, "text_content", true)
	if err != nil {
		return ErrorResult("create_notebook_entry", err.Error()), nil
	}
	notebookID, err := ReadInt(args, "notebook_id", true)
	if err != nil {
		return ErrorResult("create_notebook_entry", err.Error()), nil
	}
	resp, err := ts.eln.CreateDocument(ctx, rspace.CreateDocumentRequest{
		Name:           name,
		ParentFolderID: int64(notebookID),
		Fields:         []rspace.FieldPayload{{Content: text}},
	})
	if err != nil {
		return ErrorResultf("create_notebook_entry", "creating entry: %v", err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeTagDocument(ctx context.Context, args map[string]any) (*Result, error) {
	docID, err := ReadString(args, "doc_id", true)
	if err != nil {
		return ErrorResult("tag_document", err.Error()), nil
	}
	tags, err := ReadStringSlice(args, "tags", true)
	if err != nil {
		return ErrorResult("tag_document", err.Error()), nil
	}
	resp, err := ts.eln.UpdateDocument(ctx, docID, rspace.DocumentUpdate{Tags: tags})
	if err != nil {
		return ErrorResultf("tag_document", "tagging document %s: %v", docID, err), nil
	}
	return JSONResult(resp), nil
}

func (ts *Toolset) executeRenameDocument(ctx context.Context, args map[string]any) (*Result, error) {
	docID, err := ReadString(args, "doc_id", true)
	if err != nil {
		return ErrorResult("rename_document", err.Error()), nil
	}
	name, err := ReadString(args, "name", true)
	if err != nil {
		return ErrorResult("rename_document", err.Error()), nil
	}
	resp, err := ts.eln.UpdateDocument(ctx, docID, rspace.DocumentUpdate{Name: name})
	if err != nil {
		return ErrorResultf("rename_document", "renaming document %s: %v", docID, err), nil
	}
	return JSONResult(resp), nil
}

// readFieldPayloads converts the fields tool parameter into the client's
// field payload shape.
func readFieldPayloads(args map[string]any, key string) ([]rspace.FieldPayload, error) {
	objs, err := ReadObjectList(args, key, false)
	if err != nil || objs == nil {
		return nil, err
	}
	fields := make([]rspace.FieldPayload, 0, len(objs))
	for _, obj := range objs {
		id, _ := ReadInt(obj, "id", false)
		content, _ := ReadString(obj, "content", false)
		fields = append(fields, rspace.FieldPayload{ID: int64(id), Content: content})
	}
	return fields, nil
}
