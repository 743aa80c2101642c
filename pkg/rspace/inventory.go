package rspace

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rspace-os/rspace-mcp/pkg/grid"
)

// CreateSampleRequest describes a new sample. SubsampleCount of zero means
// the platform default of one aliquot.
type CreateSampleRequest struct {
	Name           string
	Description    string
	Tags           []string
	SubsampleCount int
	Quantity       *Quantity
}

// CreateSample registers a new sample with its subsample aliquots.
func (c *InventoryClient) CreateSample(ctx context.Context, req CreateSampleRequest) (map[string]any, error) {
	body := map[string]any{"name": req.Name}
	if req.Description != "" {
		body["description"] = req.Description
	}
	if len(req.Tags) > 0 {
		body["tags"] = Tags(req.Tags)
	}
	if req.SubsampleCount > 0 {
		body["newSampleSubSamplesCount"] = req.SubsampleCount
	}
	if req.Quantity != nil {
		body["quantity"] = req.Quantity
	}
	var out map[string]any
	if err := c.core.post(ctx, inventoryBase+"/samples", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Sample fetches one sample with its subsamples. id may be numeric or a
// global ID like "SA12345".
func (c *InventoryClient) Sample(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/samples/"+url.PathEscape(numericID(id)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Samples lists samples with pagination and sorting.
func (c *InventoryClient) Samples(ctx context.Context, p Pagination) (*SampleList, error) {
	var out SampleList
	if err := c.core.get(ctx, inventoryBase+"/samples", p.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DuplicateSample copies a sample, optionally renaming the copy.
func (c *InventoryClient) DuplicateSample(ctx context.Context, id, newName string) (map[string]any, error) {
	path := inventoryBase + "/samples/" + url.PathEscape(numericID(id)) + "/actions/duplicate"
	var body map[string]any
	if newName != "" {
		body = map[string]any{"newName": newName}
	}
	var out map[string]any
	if err := c.core.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SplitSubsample divides a subsample into numNew new aliquots. quantityPer
// greater than zero assigns that amount to each new aliquot, in the parent's
// unit.
func (c *InventoryClient) SplitSubsample(ctx context.Context, id string, numNew int, quantityPer float64) (map[string]any, error) {
	if numNew < 2 {
		return nil, fmt.Errorf("rspace: split needs at least 2 subsamples, got %d", numNew)
	}
	body := map[string]any{"split": true, "numSubSamples": numNew}
	if quantityPer > 0 {
		body["quantityPerSubSample"] = quantityPer
	}
	path := inventoryBase + "/subSamples/" + url.PathEscape(numericID(id)) + "/actions/split"
	var out map[string]any
	if err := c.core.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSubsampleNote attaches a free-text note to a subsample.
func (c *InventoryClient) AddSubsampleNote(ctx context.Context, id, note string) (map[string]any, error) {
	path := inventoryBase + "/subSamples/" + url.PathEscape(numericID(id)) + "/notes"
	var out map[string]any
	if err := c.core.post(ctx, path, map[string]any{"content": note}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search result type filters.
const (
	SearchSample    = "SAMPLE"
	SearchSubsample = "SUBSAMPLE"
	SearchContainer = "CONTAINER"
	SearchTemplate  = "TEMPLATE"
)

// Search queries all inventory items by text. resultType narrows the search
// to one item kind; empty searches everything.
func (c *InventoryClient) Search(ctx context.Context, query, resultType string) (map[string]any, error) {
	q := url.Values{"query": {query}}
	if resultType != "" {
		q.Set("resultType", strings.ToUpper(resultType))
	}
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateContainerRequest describes a new container. Rows/Columns of zero
// creates a list container; both set creates a grid container.
type CreateContainerRequest struct {
	Name               string
	Description        string
	Tags               []string
	Rows               int
	Columns            int
	CanStoreContainers bool
	CanStoreSamples    bool
	ParentContainerID  int64
}

// CreateContainer creates a list or grid container, nesting it under a
// parent container when ParentContainerID is set.
func (c *InventoryClient) CreateContainer(ctx context.Context, req CreateContainerRequest) (map[string]any, error) {
	cType := ContainerTypeList
	if req.Rows > 0 || req.Columns > 0 {
		if req.Rows < 1 || req.Columns < 1 {
			return nil, fmt.Errorf("rspace: grid container needs both dimensions, got %dx%d", req.Rows, req.Columns)
		}
		cType = ContainerTypeGrid
	}
	body := map[string]any{
		"name":               req.Name,
		"cType":              cType,
		"canStoreContainers": req.CanStoreContainers,
		"canStoreSamples":    req.CanStoreSamples,
	}
	if req.Description != "" {
		body["description"] = req.Description
	}
	if len(req.Tags) > 0 {
		body["tags"] = Tags(req.Tags)
	}
	if cType == ContainerTypeGrid {
		body["gridLayout"] = GridLayout{RowsNumber: req.Rows, ColumnsNumber: req.Columns}
	}
	if req.ParentContainerID != 0 {
		body["parentContainers"] = []map[string]any{{"id": req.ParentContainerID}}
	}
	var out map[string]any
	if err := c.core.post(ctx, inventoryBase+"/containers", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Container fetches container metadata, optionally including its stored
// contents.
func (c *InventoryClient) Container(ctx context.Context, id string, includeContent bool) (*Container, error) {
	q := url.Values{"includeContent": {strconv.FormatBool(includeContent)}}
	var out Container
	if err := c.core.get(ctx, inventoryBase+"/containers/"+url.PathEscape(numericID(id)), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GridBounds resolves the grid dimensions of a container. Fails for list
// and other non-gridded containers, which have no coordinate addressing.
func (c *InventoryClient) GridBounds(ctx context.Context, id string) (grid.Bounds, error) {
	container, err := c.Container(ctx, id, false)
	if err != nil {
		return grid.Bounds{}, err
	}
	if !container.IsGrid() {
		return grid.Bounds{}, fmt.Errorf("rspace: container %s is %s, not a grid", id, container.CType)
	}
	return grid.Bounds{Rows: container.Grid.RowsNumber, Columns: container.Grid.ColumnsNumber}, nil
}

// TopLevelContainers lists containers that are not nested inside another
// container.
func (c *InventoryClient) TopLevelContainers(ctx context.Context, p Pagination) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/containers", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Workbenches lists the caller's workbench containers.
func (c *InventoryClient) Workbenches(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/workbenches", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddItemsToListContainer moves items into a list container, which has no
// coordinate addressing.
func (c *InventoryClient) AddItemsToListContainer(ctx context.Context, containerID string, itemIDs []string) (map[string]any, error) {
	records := make([]map[string]any, 0, len(itemIDs))
	for _, id := range itemIDs {
		records = append(records, map[string]any{
			"globalId":         id,
			"parentContainers": []map[string]any{{"globalId": containerID}},
		})
	}
	return c.bulkMove(ctx, records)
}

// CommitPlacement writes a planned grid assignment to the platform. The
// platform rejects cells that are already occupied with a conflict error,
// which callers receive unmodified (errors.Is(err, ErrConflict)).
func (c *InventoryClient) CommitPlacement(ctx context.Context, containerID string, placements []grid.Placement) (map[string]any, error) {
	records := make([]map[string]any, 0, len(placements))
	for _, p := range placements {
		records = append(records, map[string]any{
			"globalId":         p.ItemID,
			"parentContainers": []map[string]any{{"globalId": containerID}},
			// Platform coordinates: X is the column, Y the row.
			"coordX": p.Column,
			"coordY": p.Row,
		})
	}
	return c.bulkMove(ctx, records)
}

func (c *InventoryClient) bulkMove(ctx context.Context, records []map[string]any) (map[string]any, error) {
	body := map[string]any{
		"operationType": "MOVE",
		"records":       records,
	}
	var out map[string]any
	if err := c.core.post(ctx, inventoryBase+"/bulk", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSampleTemplate creates a reusable sample template. template follows
// the platform's template schema.
func (c *InventoryClient) CreateSampleTemplate(ctx context.Context, template map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.core.post(ctx, inventoryBase+"/sampleTemplates", template, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleTemplate fetches one sample template definition.
func (c *InventoryClient) SampleTemplate(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/sampleTemplates/"+url.PathEscape(numericID(id)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleTemplates lists sample templates.
func (c *InventoryClient) SampleTemplates(ctx context.Context, p Pagination) (map[string]any, error) {
	var out map[string]any
	if err := c.core.get(ctx, inventoryBase+"/sampleTemplates", p.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rename changes the name of any inventory item, addressed by global ID.
func (c *InventoryClient) Rename(ctx context.Context, globalID, newName string) (map[string]any, error) {
	path, err := itemPath(globalID)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := c.core.put(ctx, path, map[string]any{"name": newName}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddExtraFields attaches custom metadata fields to any inventory item.
func (c *InventoryClient) AddExtraFields(ctx context.Context, globalID string, fields []ExtraField) (map[string]any, error) {
	path, err := itemPath(globalID)
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i].NewF = true
	}
	var out map[string]any
	if err := c.core.put(ctx, path, map[string]any{"extraFields": fields}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Barcode renders a scannable barcode image (PNG) for any global ID.
func (c *InventoryClient) Barcode(ctx context.Context, globalID string, format BarcodeFormat) ([]byte, error) {
	if format == "" {
		format = BarcodeLinear
	}
	q := url.Values{
		"content":     {globalID},
		"barcodeType": {string(format)},
	}
	data, _, _, err := c.core.raw(ctx, "GET", inventoryBase+"/barcodes", q, nil, "image/png")
	return data, err
}

// itemPath resolves a global ID prefix (SA, SS, IC, IT) to the REST
// resource holding that item.
func itemPath(globalID string) (string, error) {
	globalID = strings.TrimSpace(globalID)
	if len(globalID) < 3 {
		return "", fmt.Errorf("rspace: %q is not a global ID", globalID)
	}
	var resource string
	switch globalID[:2] {
	case "SA":
		resource = "samples"
	case "SS":
		resource = "subSamples"
	case "IC", "BE":
		resource = "containers"
	case "IT":
		resource = "sampleTemplates"
	default:
		return "", fmt.Errorf("rspace: unsupported global ID prefix %q", globalID[:2])
	}
	return inventoryBase + "/" + resource + "/" + url.PathEscape(globalID[2:]), nil
}

// numericID strips a global ID prefix, accepting either "SA12345" or a bare
// numeric ID.
func numericID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 2 && id[0] >= 'A' && id[0] <= 'Z' && id[1] >= 'A' && id[1] <= 'Z' {
		return id[2:]
	}
	return id
}

// values renders pagination as query parameters, omitting zero values.
func (p Pagination) values() url.Values {
	q := url.Values{}
	if p.PageNumber > 0 {
		q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.OrderBy != "" {
		order := p.OrderBy
		if p.SortOrder != "" {
			order += " " + p.SortOrder
		}
		q.Set("orderBy", order)
	}
	return q
}
