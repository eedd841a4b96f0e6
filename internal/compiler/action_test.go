package compiler

import (
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func TestExtractAction_DeleteStripsNegationAndFiller(t *testing.T) {
	got := ExtractAction("don't delete test files")
	if got.Action != policy.ActionDelete {
		t.Errorf("action = %v, want delete", got.Action)
	}
	if got.Phrase != "test" {
		t.Errorf("phrase = %q, want %q", got.Phrase, "test")
	}
}

func TestExtractAction_PreferResolvesToExecuteWithPhraseIntact(t *testing.T) {
	got := ExtractAction("prefer pnpm")
	if got.Action != policy.ActionExecute {
		t.Errorf("action = %v, want execute", got.Action)
	}
	if got.Phrase != "pnpm" {
		t.Errorf("phrase = %q, want %q", got.Phrase, "pnpm")
	}
}

func TestExtractAction_UnverbedNoCommandKeyword(t *testing.T) {
	got := ExtractAction("no sudo")
	if got.Action != policy.ActionExecute {
		t.Errorf("action = %v, want execute", got.Action)
	}
	if got.Phrase != "sudo" {
		t.Errorf("phrase = %q, want %q", got.Phrase, "sudo")
	}
}

func TestExtractAction_UnverbedNoLibraryKeyword(t *testing.T) {
	got := ExtractAction("no lodash")
	if got.Action != policy.ActionModify {
		t.Errorf("action = %v, want modify", got.Action)
	}
	if got.Phrase != "lodash" {
		t.Errorf("phrase = %q, want %q", got.Phrase, "lodash")
	}
}

func TestExtractAction_ReadStripsFiller(t *testing.T) {
	got := ExtractAction("read all config files")
	if got.Action != policy.ActionRead {
		t.Errorf("action = %v, want read", got.Action)
	}
	if got.Phrase != "config" {
		t.Errorf("phrase = %q, want %q", got.Phrase, "config")
	}
}
