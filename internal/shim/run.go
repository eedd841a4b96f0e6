package shim

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/gzhole/veto/internal/policy"
)

// PortEnvVar, ActiveEnvVar and ShimDirEnvVar are the environment variables
// of a shimmed session: the daemon's chosen port, the marker that the
// session is active, and the shim directory.
const (
	PortEnvVar    = "VETO_PORT"
	ActiveEnvVar  = "VETO_ACTIVE"
	ShimDirEnvVar = "VETO_SHIM_DIR"
)

// Run is the shim's full decision-and-exec cycle: resolve the real binary,
// collect candidate targets, check each with the daemon, and either exec
// the real binary or exit non-zero before ever running it.
// argv is the shim's own os.Args; Run never returns on the success path
// (syscall.Exec replaces the process image).
func Run(argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "veto-shim: missing argv[0]")
		return 1
	}
	name := filepath.Base(argv[0])

	port, err := strconv.Atoi(os.Getenv(PortEnvVar))
	if err != nil {
		fmt.Fprintf(os.Stderr, "veto-shim: %s is not set or invalid, failing closed\n", PortEnvVar)
		return 1
	}
	shimDir := os.Getenv(ShimDirEnvVar)

	if name == "git" {
		return runGit(argv, port, shimDir)
	}
	return runPlain(name, argv, port, shimDir)
}

func runPlain(name string, argv []string, port int, shimDir string) int {
	action, shimmed := ActionFor(name)
	if shimmed {
		for _, arg := range NonFlagArgs(argv[1:]) {
			if blockedArg, resp := checkTargets(action, arg, port); blockedArg != "" {
				fmt.Fprintf(os.Stderr, "veto: blocked %s %s: %s\n", name, blockedArg, resp.Reason)
				if resp.Suggest != "" {
					fmt.Fprintf(os.Stderr, "veto: suggestion: %s\n", resp.Suggest)
				}
				return 1
			}
		}
	}

	real, err := RealBinary(name, shimDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veto-shim: %v\n", err)
		return 1
	}
	return execReal(real, argv)
}

func runGit(argv []string, port int, shimDir string) int {
	decision := ClassifyGit(argv[1:])
	if decision.Deny {
		fmt.Fprintf(os.Stderr, "veto: %s\n", decision.Reason)
		return 1
	}
	if !decision.Passthrough {
		for _, t := range decision.Targets {
			if blockedArg, resp := checkTargets(decision.Action, t, port); blockedArg != "" {
				fmt.Fprintf(os.Stderr, "veto: blocked git %s: %s\n", blockedArg, resp.Reason)
				return 1
			}
		}
	}

	real, err := RealBinary("git", shimDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "veto-shim: %v\n", err)
		return 1
	}
	return execReal(real, argv)
}

// checkTargets expands arg into its constituent files (recursing into
// directories) and checks each with the daemon, returning the first
// blocked path and its response, or ("", _) if every target cleared.
func checkTargets(action policy.Action, arg string, port int) (string, policy.CheckResponse) {
	for _, target := range ExpandTarget(arg) {
		resp := Check(port, policy.CheckRequest{Action: string(action), Target: target})
		if !resp.Allowed {
			return target, resp
		}
	}
	return "", policy.CheckResponse{}
}

func execReal(real string, argv []string) int {
	args := append([]string{real}, argv[1:]...)
	err := syscall.Exec(real, args, os.Environ())
	// syscall.Exec only returns on error.
	fmt.Fprintf(os.Stderr, "veto-shim: exec %s failed: %v\n", real, err)
	return 1
}
