// Package compilecache is the content-addressed cache sitting between the
// builtin tables and the LLM compiler tier. A restriction string that
// misses every builtin table is hashed and looked up here before paying
// for a model call; a compiled Policy is stored back under the same key.
//
// Storage is a single JSON object on disk, using best-effort, lock-free
// file I/O — a corrupt or missing cache file degrades to an empty cache
// rather than failing compilation.
package compilecache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/gzhole/veto/internal/policy"
)

// schemaVersion is bumped whenever policy.Policy's shape changes in a way
// that would make previously-cached entries unmarshal incorrectly. Bumping
// it invalidates the whole cache on next load rather than risk serving a
// stale shape.
const schemaVersion = 1

// keyLen is the number of hex characters kept from the SHA-256 digest.
// 16 hex chars (64 bits) is far beyond the collision risk this cache needs
// to guard against for a single user's restriction phrases.
const keyLen = 16

type entry struct {
	Policy policy.Policy `json:"policy"`
}

type onDisk struct {
	SchemaVersion int              `json:"schemaVersion"`
	Entries       map[string]entry `json:"entries"`
}

// Cache is a loaded, in-memory view of the on-disk cache file. Reads and
// writes are best-effort: a failure to persist never surfaces as a
// compilation error.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]entry
	dirty   bool
}

// Load reads path, discarding the cache entirely if it is missing, corrupt,
// or stamped with a schema version other than the current one.
func Load(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]entry)}

	data, err := os.ReadFile(path)
	if err != nil {
		return c
	}

	var d onDisk
	if err := json.Unmarshal(data, &d); err != nil {
		return c
	}
	if d.SchemaVersion != schemaVersion {
		return c
	}
	if d.Entries != nil {
		c.entries = d.Entries
	}
	return c
}

// Key hashes a normalised restriction string into the cache's lookup key.
func Key(normalizedRestriction string) string {
	sum := sha256.Sum256([]byte(normalizedRestriction))
	return hex.EncodeToString(sum[:])[:keyLen]
}

// Get returns the cached policy for key, if present. The returned Policy is
// a copy; callers must call Compile() on it before use since compiled state
// (globs, regexps) is never serialised.
func (c *Cache) Get(key string) (policy.Policy, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return policy.Policy{}, false
	}
	return e.Policy, true
}

// Put stores p under key and marks the cache dirty so the next Flush
// persists it.
func (c *Cache) Put(key string, p policy.Policy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{Policy: p}
	c.dirty = true
}

// Flush writes the cache to disk if it has changed since Load/last Flush.
// Failures are swallowed: a write-protected or missing ~/.veto directory
// just means compilation keeps paying the LLM tier every time.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	d := onDisk{SchemaVersion: schemaVersion, Entries: c.entries}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return nil
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return nil
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return nil
	}
	c.dirty = false
	return nil
}

// Clear empties the in-memory cache and marks it dirty so the next Flush
// truncates the on-disk file. Used by the CLI's "cache clear" operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.dirty = true
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
