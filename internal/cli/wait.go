package cli

import (
	"fmt"
	"os"
	"time"
)

// waitForFile polls for path to appear and returns its contents, giving the
// background daemon child time to bind its listener and write its port
// file before the parent prints the exports a caller would eval.
func waitForFile(path string) (string, error) {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return "", fmt.Errorf("timed out waiting for %s", path)
}
