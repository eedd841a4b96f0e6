package shim

import (
	"os/exec"
	"strings"

	"github.com/gzhole/veto/internal/policy"
)

// GitDecision is the outcome of classifying a git invocation for shim
// purposes.
type GitDecision struct {
	// Passthrough means the subcommand needs no interception.
	Passthrough bool
	// Deny, if true, blocks unconditionally with Reason.
	Deny   bool
	Reason string
	// Targets, when non-empty (and Deny is false), are the paths that must
	// each clear a daemon check before the real git runs.
	Targets []string
	Action  policy.Action
}

// ClassifyGit inspects a git argv (excluding the "git" token itself) and
// decides how the shim should handle it.
func ClassifyGit(args []string) GitDecision {
	if len(args) == 0 {
		return GitDecision{Passthrough: true}
	}

	switch args[0] {
	case "rm":
		return GitDecision{Targets: NonFlagArgs(args[1:]), Action: policy.ActionDelete}

	case "clean":
		if hasDestructiveCleanFlags(args[1:]) {
			targets := dryRunCleanTargets(args[1:])
			return GitDecision{Targets: targets, Action: policy.ActionDelete}
		}
		return GitDecision{Passthrough: true}

	case "checkout":
		if isWholesaleCheckout(args[1:]) {
			return GitDecision{Deny: true, Reason: "git checkout . / -- . discards uncommitted changes; veto blocks it unconditionally"}
		}
		return GitDecision{Passthrough: true}

	case "reset":
		if hasHardFlag(args[1:]) {
			return GitDecision{Deny: true, Reason: "git reset --hard discards uncommitted changes; veto blocks it unconditionally"}
		}
		return GitDecision{Passthrough: true}

	default:
		return GitDecision{Passthrough: true}
	}
}

func hasDestructiveCleanFlags(args []string) bool {
	for _, a := range args {
		if strings.ContainsAny(a, "fdx") && strings.HasPrefix(a, "-") {
			return true
		}
	}
	return false
}

// dryRunCleanTargets asks git itself (via -n, its own dry-run flag) what
// "git clean" would remove, rather than re-implementing gitignore
// semantics.
func dryRunCleanTargets(args []string) []string {
	dryArgs := append([]string{"clean", "-n"}, args...)
	out, err := exec.Command("git", dryArgs...).Output()
	if err != nil {
		return nil
	}
	var targets []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		const prefix = "Would remove "
		if strings.HasPrefix(line, prefix) {
			targets = append(targets, strings.TrimPrefix(line, prefix))
		}
	}
	return targets
}

func isWholesaleCheckout(args []string) bool {
	trimmed := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			trimmed = append(trimmed, a)
		}
	}
	switch strings.Join(trimmed, " ") {
	case ".", "-- .":
		return true
	}
	return false
}

func hasHardFlag(args []string) bool {
	for _, a := range args {
		if a == "--hard" {
			return true
		}
	}
	return false
}
