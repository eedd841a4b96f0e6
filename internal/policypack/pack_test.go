package policypack

import (
	"os"
	"path/filepath"
	"testing"
)

func writePack(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write pack: %v", err)
	}
}

func TestLoad_MissingDirReturnsEmptyTables(t *testing.T) {
	tables, infos, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables.File) != 0 || len(tables.AST) != 0 {
		t.Errorf("expected empty tables, got %+v", tables)
	}
	if infos != nil {
		t.Errorf("expected no infos, got %v", infos)
	}
}

func TestLoad_MergesFileAndASTEntries(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "acme.yaml", `
name: acme
entries:
  - phrase: "proprietary config"
    include: ["*.proprietary"]
    description: "proprietary config files"
  - phrase: "no internal api"
    description: "internal api usage is disallowed"
    astRules:
      - id: no-internal-api
        query: "(call_expression) @call"
        languages: ["go"]
        reason: "internal api usage is disallowed"
`)

	tables, infos, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := tables.File["proprietary config"]; !ok {
		t.Errorf("expected a file entry for 'proprietary config', got %+v", tables.File)
	}
	if _, ok := tables.AST["no internal api"]; !ok {
		t.Errorf("expected an AST entry for 'no internal api', got %+v", tables.AST)
	}
	if len(infos) != 1 || infos[0].Entries != 2 {
		t.Errorf("expected one pack info with 2 entries, got %+v", infos)
	}
}

func TestLoad_UnderscorePrefixDisablesPack(t *testing.T) {
	dir := t.TempDir()
	writePack(t, dir, "_disabled.yaml", `
name: disabled
entries:
  - phrase: "should not load"
    include: ["*.x"]
    description: "disabled pack entry"
`)

	tables, infos, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tables.File) != 0 {
		t.Errorf("expected a disabled pack to contribute no entries, got %+v", tables.File)
	}
	if len(infos) != 1 || infos[0].Enabled {
		t.Errorf("expected the pack to be listed but disabled, got %+v", infos)
	}
}
