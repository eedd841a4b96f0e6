// Command veto-shim is the single interceptor binary materialised under
// every shimmed command name in a session's shim directory. It dispatches
// purely on os.Args[0], the same binary hardlinked under every command name
// it shadows.
package main

import (
	"os"

	"github.com/gzhole/veto/internal/shim"
)

func main() {
	os.Exit(shim.Run(os.Args))
}
