// Package shim materialises and runs the interceptor executables placed on
// an agent's PATH: one shim directory per session, one entry per command
// in the closed per-action table, each consulting the permission daemon
// before exec'ing the real binary.
package shim

import "github.com/gzhole/veto/internal/policy"

// CommandsByAction is the closed set of command names shimmed per action
// class.
var CommandsByAction = map[policy.Action][]string{
	policy.ActionDelete:  {"rm", "unlink", "rmdir"},
	policy.ActionModify:  {"mv", "cp", "touch", "chmod", "chown", "tee"},
	policy.ActionExecute: {"node", "python", "python3", "bash", "sh", "npx", "pnpm", "npm", "yarn"},
	policy.ActionRead:    {"cat", "less", "head", "tail", "more"},
}

// AllCommands returns every shimmed command name across every action class,
// plus "git" (handled specially, see git.go), deduplicated.
func AllCommands() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cmds := range CommandsByAction {
		for _, c := range cmds {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	seen["git"] = true
	out = append(out, "git")
	return out
}

// ActionFor returns the action class a shimmed command name belongs to, and
// whether it is shimmed at all.
func ActionFor(name string) (policy.Action, bool) {
	for action, cmds := range CommandsByAction {
		for _, c := range cmds {
			if c == name {
				return action, true
			}
		}
	}
	return "", false
}
