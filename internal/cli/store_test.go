package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func TestLoadPolicies_MissingFileReturnsEmpty(t *testing.T) {
	policies, err := loadPolicies(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(policies) != 0 {
		t.Errorf("expected no policies, got %d", len(policies))
	}
}

func TestSaveThenLoadPolicies_RoundTripsAndRecompiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.json")

	p := &policy.Policy{
		Action:      policy.ActionDelete,
		Include:     []string{"*.test.*"},
		Description: "test files are protected",
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := savePolicies(path, []*policy.Policy{p}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := loadPolicies(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 policy, got %d", len(loaded))
	}
	if loaded[0].Description != "test files are protected" {
		t.Errorf("description = %q", loaded[0].Description)
	}
	// a recompiled policy must expose working accessors, proving Compile()
	// actually ran rather than just deserializing.
	if len(loaded[0].IncludeGlobs()) != 1 {
		t.Errorf("expected IncludeGlobs to be populated after reload")
	}
}

func TestLoadPolicies_CorruptJSONIsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	_, err := loadPolicies(path)
	if err == nil {
		t.Fatal("expected an error for corrupt JSON")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected a *ValidationError, got %T: %v", err, err)
	}
}
