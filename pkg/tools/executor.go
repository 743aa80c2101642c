package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// Policy defines which tools the server exposes. Deployments disable tools
// or whole groups through configuration; explicit deny beats allow.
type Policy struct {
	Allowed  map[string]bool
	Denied   map[string]bool
	AllowAll bool
}

// NewPolicy creates an empty deny-by-default policy.
func NewPolicy() *Policy {
	return &Policy{
		Allowed: make(map[string]bool),
		Denied:  make(map[string]bool),
	}
}

// AllowAllPolicy creates a policy that allows every tool except explicit
// denials.
func AllowAllPolicy() *Policy {
	p := NewPolicy()
	p.AllowAll = true
	return p
}

// Allow explicitly allows a tool.
func (p *Policy) Allow(name string) *Policy {
	p.Allowed[name] = true
	delete(p.Denied, name)
	return p
}

// Deny explicitly denies a tool.
func (p *Policy) Deny(name string) *Policy {
	p.Denied[name] = true
	delete(p.Allowed, name)
	return p
}

// DenyGroup denies every tool in a group.
func (p *Policy) DenyGroup(registry *Registry, group string) *Policy {
	for _, name := range registry.ToolsInGroup(group) {
		p.Deny(name)
	}
	return p
}

// IsAllowed checks whether a tool is allowed by this policy.
func (p *Policy) IsAllowed(name string) bool {
	if p.Denied[name] {
		return false
	}
	if p.Allowed[name] {
		return true
	}
	return p.AllowAll
}

// Executor runs tools with policy enforcement and per-invocation logging.
type Executor struct {
	registry *Registry
	policy   *Policy
	log      zerolog.Logger
}

// NewExecutor creates an executor. A nil policy allows everything.
func NewExecutor(registry *Registry, policy *Policy, log zerolog.Logger) *Executor {
	if policy == nil {
		policy = AllowAllPolicy()
	}
	return &Executor{
		registry: registry,
		policy:   policy,
		log:      log,
	}
}

// Execute runs a tool if the policy allows it. Tool-level failures come back
// as error Results; a non-nil error means the call never reached the tool.
func (e *Executor) Execute(ctx context.Context, name string, input map[string]any) (*Result, error) {
	tool := e.registry.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if !e.policy.IsAllowed(tool.Name) {
		return nil, fmt.Errorf("tool %s is disabled by policy", tool.Name)
	}

	callID := xid.New().String()
	log := e.log.With().Str("tool", tool.Name).Str("call_id", callID).Logger()
	ctx = log.WithContext(ctx)

	start := time.Now()
	result, err := tool.Execute(ctx, input)
	evt := log.Debug().Dur("took", time.Since(start))
	switch {
	case err != nil:
		evt = log.Warn().Dur("took", time.Since(start)).Err(err)
	case result != nil && result.Status != ResultSuccess:
		evt = evt.Str("status", string(result.Status)).Str("tool_error", result.Error)
	}
	evt.Msg("tool call")

	return result, err
}

// CanExecute checks whether a tool exists and is allowed.
func (e *Executor) CanExecute(name string) bool {
	tool := e.registry.Get(name)
	return tool != nil && e.policy.IsAllowed(tool.Name)
}

// AllowedTools returns every tool the policy exposes, sorted by name.
func (e *Executor) AllowedTools() []*Tool {
	var allowed []*Tool
	for _, tool := range e.registry.All() {
		if e.policy.IsAllowed(tool.Name) {
			allowed = append(allowed, tool)
		}
	}
	return allowed
}

// AllowedToolInfos returns listing metadata for the exposed tools.
func (e *Executor) AllowedToolInfos() []ToolInfo {
	var infos []ToolInfo
	for _, tool := range e.AllowedTools() {
		infos = append(infos, ToolInfo{
			Name:        tool.Name,
			Description: tool.Description,
			Group:       tool.Group,
			Enabled:     true,
		})
	}
	return infos
}

// Registry returns the underlying registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}
