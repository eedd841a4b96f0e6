package astengine

import "testing"

func TestParseCache_HashDiffersOnContentChange(t *testing.T) {
	if got, want := rollingHash32([]byte("package a")), rollingHash32([]byte("package b")); got == want {
		t.Fatalf("rollingHash32 collided on distinct content, test fixture is broken")
	}
}

func TestParseCache_LookupMissesOnUnknownPath(t *testing.T) {
	c := newParseCache()
	if tree := c.lookup("missing.go", []byte("package a")); tree != nil {
		t.Errorf("expected a miss for a path never stored, got %v", tree)
	}
}

func TestParseCache_ClearPathRemovesOnlyThatEntry(t *testing.T) {
	c := newParseCache()
	c.store("a.go", []byte("package a"), LangGo, nil)
	c.store("b.go", []byte("package b"), LangGo, nil)

	c.ClearPath("a.go")
	if _, ok := c.entries["a.go"]; ok {
		t.Errorf("expected a.go to be removed")
	}
	if _, ok := c.entries["b.go"]; !ok {
		t.Errorf("expected b.go to remain")
	}
}

func TestParseCache_ClearRemovesEverything(t *testing.T) {
	c := newParseCache()
	c.store("a.go", []byte("package a"), LangGo, nil)
	c.Clear()
	if len(c.entries) != 0 {
		t.Errorf("expected Clear to empty the cache, got %d entries", len(c.entries))
	}
}
