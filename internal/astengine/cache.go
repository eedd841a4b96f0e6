package astengine

import sitter "github.com/smacker/go-tree-sitter"

// rollingHash32 is a simple 32-bit polynomial rolling hash over content
// bytes, used only to detect whether a cached parse tree is stale — not a
// cryptographic digest.
func rollingHash32(content []byte) uint32 {
	var h uint32 = 2166136261 // FNV offset basis, reused as a seed
	for _, b := range content {
		h = (h * 16777619) ^ uint32(b)
	}
	return h
}

// cacheEntry holds a parsed tree plus the hash of the content it was
// parsed from, so a later call with different content invalidates it.
type cacheEntry struct {
	tree   *sitter.Tree
	hash   uint32
	lang   Lang
}

// parseCache is keyed by absolute file path. It is not safe for concurrent
// use across goroutines — callers wanting concurrent parsing partition
// files across independent Engines instead.
type parseCache struct {
	entries map[string]*cacheEntry
}

func newParseCache() *parseCache {
	return &parseCache{entries: make(map[string]*cacheEntry)}
}

// lookup returns the cached tree for path if present and content still
// hashes the same, or nil otherwise.
func (c *parseCache) lookup(path string, content []byte) *sitter.Tree {
	e, ok := c.entries[path]
	if !ok {
		return nil
	}
	if e.hash != rollingHash32(content) {
		return nil
	}
	return e.tree
}

func (c *parseCache) store(path string, content []byte, lang Lang, tree *sitter.Tree) {
	c.entries[path] = &cacheEntry{tree: tree, hash: rollingHash32(content), lang: lang}
}

// Clear removes every cached entry.
func (c *parseCache) Clear() {
	c.entries = make(map[string]*cacheEntry)
}

// ClearPath removes the cached entry for a single path, if any.
func (c *parseCache) ClearPath(path string) {
	delete(c.entries, path)
}
