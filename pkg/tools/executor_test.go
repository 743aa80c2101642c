package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestExecutor(policy *Policy, toolList ...*Tool) *Executor {
	reg := NewRegistry()
	for _, tool := range toolList {
		reg.Register(tool)
	}
	return NewExecutor(reg, policy, zerolog.Nop())
}

func TestExecutorRunsAllowedTool(t *testing.T) {
	exec := newTestExecutor(nil, fakeTool("echo", GroupUtility))

	result, err := exec.Execute(context.Background(), "echo", nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.IsSuccess() {
		t.Errorf("status = %s, want success", result.Status)
	}
	if result.Text() != "ok: echo" {
		t.Errorf("Text() = %q", result.Text())
	}
}

func TestExecutorRejectsUnknownTool(t *testing.T) {
	exec := newTestExecutor(nil)

	_, err := exec.Execute(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("error = %v, want unknown tool", err)
	}
}

func TestExecutorEnforcesPolicy(t *testing.T) {
	policy := AllowAllPolicy()
	policy.Deny("blocked")
	exec := newTestExecutor(policy,
		fakeTool("blocked", GroupUtility),
		fakeTool("open", GroupUtility),
	)

	if _, err := exec.Execute(context.Background(), "blocked", nil); err == nil {
		t.Fatal("expected policy rejection")
	}
	if _, err := exec.Execute(context.Background(), "open", nil); err != nil {
		t.Fatalf("allowed tool rejected: %v", err)
	}
	if exec.CanExecute("blocked") {
		t.Error("CanExecute(blocked) = true")
	}

	allowed := exec.AllowedTools()
	if len(allowed) != 1 || allowed[0].Name != "open" {
		t.Errorf("AllowedTools() = %v, want just open", allowed)
	}
}

func TestPolicyDenyBeatsAllow(t *testing.T) {
	p := NewPolicy()
	p.Allow("x")
	p.Deny("x")
	if p.IsAllowed("x") {
		t.Error("deny should beat allow")
	}

	p.Allow("x")
	if !p.IsAllowed("x") {
		t.Error("re-allow should clear the denial")
	}
}

func TestPolicyDenyGroup(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeTool("move_a", GroupMovement))
	reg.Register(fakeTool("move_b", GroupMovement))
	reg.Register(fakeTool("read_a", GroupELN))

	policy := AllowAllPolicy()
	policy.DenyGroup(reg, GroupMovement)

	if policy.IsAllowed("move_a") || policy.IsAllowed("move_b") {
		t.Error("movement tools should be denied")
	}
	if !policy.IsAllowed("read_a") {
		t.Error("other groups should stay allowed")
	}
}

func TestExecutorResolvesAliases(t *testing.T) {
	reg := NewRegistry()
	reg.Register(fakeTool("create_notebook", GroupELN))
	reg.RegisterAlias("createNewNotebook", "create_notebook")
	exec := NewExecutor(reg, nil, zerolog.Nop())

	result, err := exec.Execute(context.Background(), "createNewNotebook", nil)
	if err != nil {
		t.Fatalf("Execute via alias: %v", err)
	}
	if !result.IsSuccess() {
		t.Errorf("status = %s, want success", result.Status)
	}
}
