// Package hooksynth derives agent-neutral hook/rule records from a Policy.
// It performs no I/O: the result is plain data the caller writes to
// whatever config file a given agent integration expects.
package hooksynth

import (
	"fmt"
	"strings"

	"github.com/gzhole/veto/internal/policy"
)

// Entry is one synthesised rule: a command/path pattern paired with an
// allow or deny decision and the human-readable reason behind it.
type Entry struct {
	Pattern string
	Allow   bool
	Reason  string
}

// Agent identifies a supported hook-config target. Each has its own
// pattern rewrite table: `**/` → `*/`, `**` → `*` for one target, `*` →
// `:*` for another.
type Agent string

const (
	AgentClaudeCode Agent = "claude-code"
	AgentCursor     Agent = "cursor"
	AgentGeneric    Agent = "generic"
)

// rewriteTables maps each agent to its glob-rewrite rule set. Every pair is
// applied in order to the whole pattern, each one rewriting the output of the
// pair before it.
var rewriteTables = map[Agent][][2]string{
	AgentClaudeCode: {
		{"**/", "*/"},
		{"**", "*"},
	},
	AgentCursor: {
		{"**", "*"},
		{"*", ":*"},
	},
	AgentGeneric: nil,
}

// destructiveCommandsByAction mirrors shim.CommandsByAction's destructive
// subset: the commands a file rule expands into deny entries for.
var destructiveCommandsByAction = map[policy.Action][]string{
	policy.ActionDelete: {"rm %s", "rm -f %s", "rm -rf %s", "git rm %s"},
	policy.ActionModify: {"mv %s", "cp %s"},
}

// Synthesise derives an agent's rule set from p.
func Synthesise(p *policy.Policy, agent Agent) []Entry {
	var entries []Entry

	for _, pattern := range p.Include {
		rp := rewrite(pattern, agent)
		for _, tmpl := range destructiveCommandsByAction[p.Action] {
			entries = append(entries, Entry{Pattern: fmt.Sprintf(tmpl, rp), Allow: false, Reason: p.Description})
		}
	}
	for _, pattern := range p.Exclude {
		rp := rewrite(pattern, agent)
		for _, tmpl := range destructiveCommandsByAction[p.Action] {
			entries = append(entries, Entry{Pattern: fmt.Sprintf(tmpl, rp), Allow: true, Reason: "excluded from: " + p.Description})
		}
	}

	for _, rule := range p.CommandRules {
		for _, block := range rule.Block {
			entries = append(entries, Entry{Pattern: rewrite(block, agent), Allow: false, Reason: rule.Reason})
		}
	}

	return entries
}

func rewrite(pattern string, agent Agent) string {
	for _, pair := range rewriteTables[agent] {
		pattern = strings.ReplaceAll(pattern, pair[0], pair[1])
	}
	return pattern
}
