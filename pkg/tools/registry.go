package tools

import (
	"sort"
	"sync"
)

// Registry manages the available tools with grouping and aliasing support.
// Aliases carry the legacy camel-case tool names that earlier clients of the
// server were written against.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]*Tool    // name -> tool
	groups  map[string][]string // group name -> tool names
	aliases map[string]string   // alias -> canonical name
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make(map[string]*Tool),
		groups:  make(map[string][]string),
		aliases: make(map[string]string),
	}
}

// Register adds a tool, indexing it under its group.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := tool.Name
	r.tools[name] = tool
	if tool.Group != "" {
		r.groups[tool.Group] = append(r.groups[tool.Group], name)
	}
}

// RegisterAlias makes a tool reachable under an alternate name, e.g.
// "createNewNotebook" -> "create_notebook".
func (r *Registry) RegisterAlias(alias, canonical string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = canonical
}

// Get retrieves a tool by name, resolving aliases.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	return r.tools[name]
}

// Has checks whether a tool exists under the given name or alias.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// All returns every registered tool, sorted by name for stable listings.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]*Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Aliases returns a copy of the alias table, alias -> canonical name.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make(map[string]string, len(r.aliases))
	for alias, canonical := range r.aliases {
		aliases[alias] = canonical
	}
	return aliases
}

// Groups returns all group names.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]string, 0, len(r.groups))
	for group := range r.groups {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// ToolsInGroup returns the tool names in a group.
func (r *Registry) ToolsInGroup(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := r.groups[group]
	if names == nil {
		return nil
	}
	result := make([]string, len(names))
	copy(result, names)
	return result
}
