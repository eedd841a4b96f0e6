// Command veto is the operator-facing CLI: compiling restrictions into
// policies, running the permission daemon, and inspecting or clearing its
// supporting caches.
package main

import (
	"os"

	"github.com/gzhole/veto/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
