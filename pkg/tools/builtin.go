package tools

import (
	"github.com/rspace-os/rspace-mcp/pkg/rspace"
)

// Tool group constants, mirroring the platform's feature areas. Policies
// disable whole groups by these names.
const (
	GroupELN        = "group:eln"
	GroupForms      = "group:forms"
	GroupSamples    = "group:samples"
	GroupContainers = "group:containers"
	GroupMovement   = "group:movement"
	GroupTemplates  = "group:templates"
	GroupUtility    = "group:utility"
)

// Toolset binds the tool definitions to one platform deployment.
type Toolset struct {
	eln *rspace.ELNClient
	inv *rspace.InventoryClient
}

// NewToolset creates the toolset for a platform client.
func NewToolset(client *rspace.Client) *Toolset {
	return &Toolset{eln: client.ELN, inv: client.Inventory}
}

// All returns every tool in the set.
func (ts *Toolset) All() []*Tool {
	var all []*Tool
	all = append(all, ts.documentTools()...)
	all = append(all, ts.formTools()...)
	all = append(all, ts.activityTools()...)
	all = append(all, ts.sampleTools()...)
	all = append(all, ts.containerTools()...)
	all = append(all, ts.movementTools()...)
	all = append(all, ts.templateTools()...)
	all = append(all, ts.utilityTools()...)
	return all
}

// legacyAliases maps the camel-case tool names earlier clients used to the
// canonical snake-case names.
var legacyAliases = map[string]string{
	"get_single_Rspace_document":    "get_document",
	"createNewNotebook":             "create_notebook",
	"createNotebookEntry":           "create_notebook_entry",
	"tagDocumentOrNotebookEntry":    "tag_document",
	"renameDocumentOrNotebookEntry": "rename_document",
	"getAuditEvents":                "get_audit_events",
	"downloadFile":                  "download_file",
}

// Registry builds a registry holding every tool plus the legacy aliases.
func (ts *Toolset) Registry() *Registry {
	reg := NewRegistry()
	for _, tool := range ts.All() {
		reg.Register(tool)
	}
	for alias, canonical := range legacyAliases {
		reg.RegisterAlias(alias, canonical)
	}
	return reg
}
