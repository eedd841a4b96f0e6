package hooksynth

import (
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func TestSynthesise_FilePolicy(t *testing.T) {
	p := &policy.Policy{
		Action:      policy.ActionDelete,
		Include:     []string{"*.test.ts"},
		Exclude:     []string{"test-results.*"},
		Description: "test files are protected",
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	entries := Synthesise(p, AgentGeneric)

	wantDeny := map[string]bool{
		"rm *.test.ts":    true,
		"rm -f *.test.ts": true,
		"rm -rf *.test.ts": true,
		"git rm *.test.ts": true,
	}
	wantAllow := "rm test-results.*"

	var sawAllow bool
	for _, e := range entries {
		if e.Allow {
			if e.Pattern == wantAllow {
				sawAllow = true
			}
			continue
		}
		delete(wantDeny, e.Pattern)
	}
	if len(wantDeny) != 0 {
		t.Errorf("missing deny entries: %v", wantDeny)
	}
	if !sawAllow {
		t.Errorf("expected an allow entry for %q", wantAllow)
	}
}

func TestSynthesise_CommandPolicy(t *testing.T) {
	p := &policy.Policy{
		Action:      policy.ActionExecute,
		Description: "use pnpm",
		CommandRules: []policy.CommandRule{
			{Block: []string{"npm install*"}, Reason: "npm is disallowed, use pnpm"},
		},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	entries := Synthesise(p, AgentClaudeCode)
	if len(entries) != 1 || entries[0].Allow {
		t.Fatalf("expected exactly one deny entry, got %+v", entries)
	}
	if entries[0].Pattern != "npm install*" {
		t.Errorf("expected pattern unchanged by claude-code rewrite table, got %q", entries[0].Pattern)
	}
}
