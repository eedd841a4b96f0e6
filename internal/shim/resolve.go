package shim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RealBinary scans PATH, excluding shimDir, for the first executable named
// name.
func RealBinary(name, shimDir string) (string, error) {
	pathEnv := os.Getenv("PATH")
	absShimDir, _ := filepath.Abs(shimDir)

	for _, dir := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		absDir, _ := filepath.Abs(dir)
		if absDir == absShimDir {
			continue
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 != 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("shim: no real binary named %q found outside %s", name, shimDir)
}

// NonFlagArgs returns every argument in args that doesn't start with '-'.
func NonFlagArgs(args []string) []string {
	var out []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}
