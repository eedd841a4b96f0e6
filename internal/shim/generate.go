package shim

import (
	"fmt"
	"os"
	"path/filepath"
)

// Generate materialises a session shim directory at dir: one hardlink (or,
// if hardlinking fails across filesystems, a copy) per shimmed command name
// pointing at shimBinary, the already-built cmd/veto-shim executable. Dir
// is created if absent.
func Generate(dir, shimBinary string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("shim: create dir %s: %w", dir, err)
	}

	for _, name := range AllCommands() {
		dst := filepath.Join(dir, name)
		_ = os.Remove(dst)
		if err := os.Link(shimBinary, dst); err != nil {
			if err := copyFile(shimBinary, dst); err != nil {
				return fmt.Errorf("shim: materialise %s: %w", name, err)
			}
		}
	}
	return nil
}

// Cleanup removes the session shim directory. The daemon owns this
// directory exclusively; no other writer exists.
func Cleanup(dir string) error {
	return os.RemoveAll(dir)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}
