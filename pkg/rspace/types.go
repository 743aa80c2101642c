package rspace

import (
	"fmt"
	"strings"
)

// Tag is the platform's tag object. The API takes tags as objects, not bare
// strings.
type Tag struct {
	Value string `json:"value"`
}

// Tags converts a list of tag strings to platform tag objects, dropping
// blanks.
func Tags(values []string) []Tag {
	out := make([]Tag, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, Tag{Value: v})
	}
	return out
}

// Quantity is the platform's amount-with-unit object.
type Quantity struct {
	NumericValue float64 `json:"numericValue"`
	UnitID       int     `json:"unitId"`
}

// unitIDs maps unit labels to the platform's fixed unit identifiers.
// Micro prefixes are accepted both as "u" and "µ".
var unitIDs = map[string]int{
	"dimensionless": 1,
	"items":         2,
	"µl":            3,
	"ul":            3,
	"ml":            4,
	"l":             5,
	"µg":            6,
	"ug":            6,
	"mg":            7,
	"g":             8,
	"kg":            9,
	"µmol":          10,
	"umol":          10,
	"mmol":          11,
	"mol":           12,
}

// QuantityOf translates a value and unit label into a platform quantity
// object.
func QuantityOf(value float64, unit string) (Quantity, error) {
	id, ok := unitIDs[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		return Quantity{}, fmt.Errorf("rspace: unknown quantity unit %q", unit)
	}
	return Quantity{NumericValue: value, UnitID: id}, nil
}

// Document is an ELN document with its field content. Fields carry the HTML
// content that get_document concatenates for the caller.
type Document struct {
	ID       int64           `json:"id"`
	GlobalID string          `json:"globalId"`
	Name     string          `json:"name"`
	Created  string          `json:"created"`
	Tags     string          `json:"tags"`
	Fields   []DocumentField `json:"fields"`
}

// DocumentField is one field within a structured document.
type DocumentField struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// DocumentList is a page of document metadata.
type DocumentList struct {
	TotalHits int        `json:"totalHits"`
	PageNum   int        `json:"pageNumber"`
	Documents []Document `json:"documents"`
}

// FieldPayload is the field content sent on document create and update.
type FieldPayload struct {
	ID      int64  `json:"id,omitempty"`
	Content string `json:"content"`
}

// Container types as reported by the platform.
const (
	ContainerTypeList      = "LIST"
	ContainerTypeGrid      = "GRID"
	ContainerTypeWorkbench = "WORKBENCH"
	ContainerTypeImage     = "IMAGE"
)

// GridLayout is the fixed geometry of a grid container.
type GridLayout struct {
	RowsNumber    int `json:"rowsNumber"`
	ColumnsNumber int `json:"columnsNumber"`
}

// Container is inventory container metadata, with grid geometry when the
// container is gridded.
type Container struct {
	ID       int64           `json:"id"`
	GlobalID string          `json:"globalId"`
	Name     string          `json:"name"`
	CType    string          `json:"cType"`
	Capacity int             `json:"capacity,omitempty"`
	Grid     *GridLayout     `json:"gridLayout,omitempty"`
	Stored   []StoredContent `json:"locations,omitempty"`
}

// IsGrid reports whether the container is coordinate addressed.
func (c *Container) IsGrid() bool {
	return c.CType == ContainerTypeGrid && c.Grid != nil
}

// StoredContent is one occupied location inside a container.
type StoredContent struct {
	ID      int64          `json:"id"`
	CoordX  int            `json:"coordX"`
	CoordY  int            `json:"coordY"`
	Content map[string]any `json:"content,omitempty"`
}

// Sample is inventory sample metadata as returned in listings.
type Sample struct {
	ID       int64     `json:"id"`
	GlobalID string    `json:"globalId"`
	Name     string    `json:"name"`
	Created  string    `json:"created"`
	Tags     []Tag     `json:"tags"`
	Quantity *Quantity `json:"quantity,omitempty"`
}

// SampleList is a page of sample metadata.
type SampleList struct {
	TotalHits int      `json:"totalHits"`
	PageNum   int      `json:"pageNumber"`
	Samples   []Sample `json:"samples"`
}

// Pagination controls listing endpoints. Zero values fall back to the
// platform defaults.
type Pagination struct {
	PageNumber int
	PageSize   int
	OrderBy    string
	SortOrder  string
}

// ExtraFieldType discriminates custom field payloads.
type ExtraFieldType string

const (
	ExtraFieldText   ExtraFieldType = "text"
	ExtraFieldNumber ExtraFieldType = "number"
)

// ExtraField is a custom metadata field attached to an inventory item.
type ExtraField struct {
	Name    string         `json:"name"`
	Type    ExtraFieldType `json:"type"`
	Content string         `json:"content"`
	NewF    bool           `json:"newFieldRequest"`
}

// BarcodeFormat selects the rendering of generated barcodes.
type BarcodeFormat string

const (
	BarcodeLinear BarcodeFormat = "BARCODE"
	BarcodeQR     BarcodeFormat = "QR"
)
