package builtin

import "testing"

func TestLookupCommand_DirectMatch(t *testing.T) {
	b, ok := LookupCommand("prefer pnpm")
	if !ok {
		t.Fatalf("expected a match for 'prefer pnpm'")
	}
	if len(b.CommandRules) != 2 {
		t.Errorf("expected 2 command rules, got %d", len(b.CommandRules))
	}
}

func TestLookupCommand_ContainmentFallback(t *testing.T) {
	b, ok := LookupCommand("please no sudo here")
	if !ok {
		t.Fatalf("expected containment match against 'no sudo'")
	}
	if b.Description != CommandPhrases["no sudo"].Description {
		t.Errorf("resolved to the wrong builtin: %+v", b)
	}
}

func TestLookupCommand_NoMatch(t *testing.T) {
	if _, ok := LookupCommand("something unrelated entirely"); ok {
		t.Errorf("expected no match")
	}
}
