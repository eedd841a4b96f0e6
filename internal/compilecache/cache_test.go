package compilecache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func testPolicy(t *testing.T) policy.Policy {
	t.Helper()
	p := policy.Policy{
		Action:      policy.ActionModify,
		Description: "no lodash",
		Include:     []string{"*.ts"},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestCache_PutGetRoundTrip(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "cache.json"))
	key := Key("no lodash")
	c.Put(key, testPolicy(t))

	got, ok := c.Get(key)
	if !ok {
		t.Fatalf("expected a hit after Put")
	}
	if got.Description != "no lodash" {
		t.Errorf("got %+v", got)
	}
}

func TestCache_MissingFileLoadsEmpty(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if c.Len() != 0 {
		t.Errorf("expected an empty cache, got %d entries", c.Len())
	}
}

func TestCache_FlushThenReloadPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := Load(path)
	key := Key("no lodash")
	c.Put(key, testPolicy(t))
	if err := c.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	reloaded := Load(path)
	got, ok := reloaded.Get(key)
	if !ok {
		t.Fatalf("expected the persisted entry to survive reload")
	}
	if err := got.Compile(); err != nil {
		t.Fatalf("reloaded policy failed to recompile: %v", err)
	}
}

func TestCache_SchemaVersionMismatchDiscardsCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	stale := `{"schemaVersion": 999, "entries": {"abc": {"policy": {}}}}`
	if err := os.WriteFile(path, []byte(stale), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := Load(path)
	if c.Len() != 0 {
		t.Errorf("expected a version mismatch to discard the cache, got %d entries", c.Len())
	}
}

func TestCache_CorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := Load(path)
	if c.Len() != 0 {
		t.Errorf("expected a corrupt file to discard the cache, got %d entries", c.Len())
	}
}

func TestCache_ClearEmptiesEntries(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "cache.json"))
	c.Put(Key("x"), testPolicy(t))
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected Clear to empty the cache, got %d entries", c.Len())
	}
}

func TestKey_IsSixteenHexChars(t *testing.T) {
	k := Key("no lodash")
	if len(k) != 16 {
		t.Errorf("expected a 16-char key, got %q (%d chars)", k, len(k))
	}
}
