package astengine

import (
	"testing"

	"github.com/gzhole/veto/internal/builtin"
	"github.com/gzhole/veto/internal/policy"
)

func noGoPanicPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	b, ok := builtin.LookupAST("no go panic")
	if !ok {
		t.Fatalf("expected the 'no go panic' builtin to exist")
	}
	p := &policy.Policy{Action: policy.ActionModify, Description: b.Description, ASTRules: b.ASTRules}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestCheckContentAST_FindsPanicCall(t *testing.T) {
	e := NewEngine()
	content := []byte("package main\n\nfunc f() {\n\tpanic(\"boom\")\n}\n")
	res := e.CheckContentAST(content, "f.go", noGoPanicPolicy(t))
	if res.Allowed {
		t.Fatalf("expected a panic() call to be flagged")
	}
	if res.Match == nil {
		t.Fatalf("expected a Match")
	}
	if res.Match.Line != 4 {
		t.Errorf("Line = %d, want 4", res.Match.Line)
	}
}

func TestCheckContentAST_RegexPreFilterSkipsParse(t *testing.T) {
	e := NewEngine()
	content := []byte("package main\n\nfunc f() {}\n")
	res := e.CheckContentAST(content, "f.go", noGoPanicPolicy(t))
	if !res.Allowed {
		t.Errorf("expected no panic( substring to skip the rule entirely")
	}
}

func TestCheckContentAST_UnrecognisedExtensionSkips(t *testing.T) {
	e := NewEngine()
	res := e.CheckContentAST([]byte("panic(\"x\")"), "f.unknownext", noGoPanicPolicy(t))
	if !res.Allowed || res.Method != MethodSkipped {
		t.Errorf("expected an unrecognised extension to skip AST evaluation entirely, got %+v", res)
	}
}

func TestEngine_ParseCachesByContentHash(t *testing.T) {
	e := NewEngine()
	content := []byte("package main\n\nfunc f() {}\n")
	r1, ok := e.Parse("f.go", content)
	if !ok {
		t.Fatalf("expected a successful parse")
	}
	r2, ok := e.Parse("f.go", content)
	if !ok {
		t.Fatalf("expected a cache-hit parse")
	}
	if r2.ParseTimeMs != 0 {
		t.Errorf("expected a cache hit to report zero parse time, got %v", r2.ParseTimeMs)
	}
	if r1.Tree != r2.Tree {
		t.Errorf("expected the cached call to return the same tree")
	}
}
