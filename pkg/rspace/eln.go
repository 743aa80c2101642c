package rspace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Status checks that the deployment is reachable and returns its status
// message.
func (c *ELNClient) Status(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.core.get(ctx, elnBase+"/status", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Documents lists recent documents, newest first. pageSize must be between
// 1 and 200.
func (c *ELNClient) Documents(ctx context.Context, pageSize int) (*DocumentList, error) {
	if pageSize < 1 || pageSize > 200 {
		return nil, fmt.Errorf("rspace: page size %d out of range 1..200", pageSize)
	}
	q := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
	var out DocumentList
	if err := c.core.get(ctx, elnBase+"/documents", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Document fetches one document with full field content. id may be a
// numeric ID or a global ID like "SD12345".
func (c *ELNClient) Document(ctx context.Context, id string) (*Document, error) {
	var out Document
	if err := c.core.get(ctx, elnBase+"/documents/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DocumentUpdate carries the mutable parts of a document. Nil/empty fields
// are left untouched by the platform.
type DocumentUpdate struct {
	Name   string
	Tags   []string
	FormID string
	Fields []FieldPayload
}

// UpdateDocument applies upd to the document identified by id.
func (c *ELNClient) UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (map[string]any, error) {
	body := map[string]any{}
	if upd.Name != "" {
		body["name"] = upd.Name
	}
	if upd.Tags != nil {
		// The documents API takes tags as a comma-joined string.
		body["tags"] = strings.Join(upd.Tags, ",")
	}
	if upd.FormID != "" {
		body["form"] = map[string]any{"globalId": upd.FormID}
	}
	if len(upd.Fields) > 0 {
		body["fields"] = upd.Fields
	}
	var out map[string]any
	if err := c.core.put(ctx, elnBase+"/documents/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFolder creates a folder; with notebook set, the folder is an
// electronic lab notebook that entries can be added to.
func (c *ELNClient) CreateFolder(ctx context.Context, name string, notebook bool) (map[string]any, error) {
	body := map[string]any{"name": name, "notebook": notebook}
	var out map[string]any
	if err := c.core.post(ctx, elnBase+"/folders", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDocumentRequest describes a new document or notebook entry.
type CreateDocumentRequest struct {
	Name           string
	ParentFolderID int64
	FormID         string
	Tags           []string
	Fields         []FieldPayload
}

// CreateDocument creates a document, optionally structured by a form and
// filed under a parent folder or notebook.
func (c *ELNClient) CreateDocument(ctx context.Context, req CreateDocumentRequest) (map[string]any, error) {
	body := map[string]any{"name": req.Name}
	if req.ParentFolderID != 0 {
		body["parentFolderId"] = req.ParentFolderID
	}
	if req.FormID != "" {
		body["form"] = map[string]any{"globalId": req.FormID}
	}
	if req.Tags != nil {
		body["tags"] = strings.Join(req.Tags, ",")
	}
	if len(req.Fields) > 0 {
		body["fields"] = req.Fields
	}
	var out map[string]any
	if err := c.core.post(ctx, elnBase+"/documents", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FormQuery filters and orders form listings.
type FormQuery struct {
	Query      string
	OrderBy    string
	PageNumber int
	PageSize   int
}

// Forms lists available form templates.
func (c *ELNClient) Forms(ctx context.Context, fq FormQuery) (map[string]any, error) {
	q := url.Values{}
	if fq.Query != "" {
		q.Set("query", fq.Query)
	}
	if fq.OrderBy != "" {
		q.Set("orderBy", fq.OrderBy)
	}
	if fq.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(fq.PageNumber))
	}
	if fq.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(fq.PageSize))
	}
	var out map[string]any
	if err := c.core.get(ctx, elnBase+"/forms", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Form fetches a single form definition.
func (c *ELNClient) Form(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, elnBase+"/forms/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateForm creates a form template in the NEW state. fields follow the
// platform's form-field schema (name, type, mandatory, defaultValue).
func (c *ELNClient) CreateForm(ctx context.Context, name string, tags []string, fields []map[string]any) (map[string]any, error) {
	body := map[string]any{"name": name}
	if tags != nil {
		body["tags"] = strings.Join(tags, ",")
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	var out map[string]any
	if err := c.core.post(ctx, elnBase+"/forms", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// formAction drives the publish/share lifecycle endpoints, which share a
// shape.
func (c *ELNClient) formAction(ctx context.Context, id, action string) (map[string]any, error) {
	var out map[string]any
	path := elnBase + "/forms/" + url.PathEscape(id) + "/" + action
	if err := c.core.put(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublishForm makes a form usable for document creation.
func (c *ELNClient) PublishForm(ctx context.Context, id string) (map[string]any, error) {
	return c.formAction(ctx, id, "publish")
}

// UnpublishForm hides a form from document creation without deleting it.
func (c *ELNClient) UnpublishForm(ctx context.Context, id string) (map[string]any, error) {
	return c.formAction(ctx, id, "unpublish")
}

// ShareForm shares a form with the caller's groups.
func (c *ELNClient) ShareForm(ctx context.Context, id string) (map[string]any, error) {
	return c.formAction(ctx, id, "share")
}

// UnshareForm makes a shared form private again.
func (c *ELNClient) UnshareForm(ctx context.Context, id string) (map[string]any, error) {
	return c.formAction(ctx, id, "unshare")
}

// DeleteForm permanently removes a form. Only forms still in the NEW state
// can be deleted.
func (c *ELNClient) DeleteForm(ctx context.Context, id string) error {
	return c.core.delete(ctx, elnBase+"/forms/"+url.PathEscape(id))
}

// ActivityQuery filters the audit trail.
type ActivityQuery struct {
	Users    []string
	GlobalID string
	DateFrom string // ISO 8601
	DateTo   string // ISO 8601
}

// Activity returns audit events matching the query, newest first.
func (c *ELNClient) Activity(ctx context.Context, aq ActivityQuery) (map[string]any, error) {
	q := url.Values{}
	if len(aq.Users) > 0 {
		q.Set("users", strings.Join(aq.Users, ","))
	}
	if aq.GlobalID != "" {
		q.Set("oid", aq.GlobalID)
	}
	if aq.DateFrom != "" {
		q.Set("dateFrom", aq.DateFrom)
	}
	if aq.DateTo != "" {
		q.Set("dateTo", aq.DateTo)
	}
	var out map[string]any
	if err := c.core.get(ctx, elnBase+"/activity", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DownloadFile fetches the raw bytes of a file attachment.
func (c *ELNClient) DownloadFile(ctx context.Context, fileID int64) ([]byte, error) {
	path := elnBase + "/files/" + strconv.FormatInt(fileID, 10) + "/file"
	data, _, _, err := c.core.raw(ctx, "GET", path, nil, nil, "application/octet-stream")
	return data, err
}
