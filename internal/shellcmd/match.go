package shellcmd

import (
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// CommandMatches reports whether command matches the command-pattern
// syntax used by builtin and compiled command rules:
//   - exact equality (after lower-casing + whitespace collapsing) is a fast path
//   - a pattern with no wildcards is a prefix match
//   - a pattern starting with '*' is a substring match
//   - otherwise the pattern is split at its first '*'; the command must
//     start with the literal prefix, and the remainder is glob-matched
//     against the pattern tail
func CommandMatches(command, pattern string) bool {
	c := collapse(command)
	p := collapse(pattern)

	if c == p {
		return true
	}

	if !strings.ContainsAny(p, "*?") {
		return strings.HasPrefix(c, p) && (len(c) == len(p) || c[len(p)] == ' ')
	}

	if strings.HasPrefix(p, "*") {
		return strings.Contains(c, strings.Trim(p, "*"))
	}

	idx := strings.Index(p, "*")
	prefix := p[:idx]
	tail := p[idx:]
	if !strings.HasPrefix(c, prefix) {
		return false
	}

	g, err := glob.Compile(p)
	if err != nil {
		return false
	}
	_ = tail
	return g.Match(c)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// aliasTable is the single shared table of common shell-command aliases.
// Expansion happens before matching; the original form is always retained
// as a variation alongside each expansion.
var aliasTable = []struct {
	from *regexp.Regexp
	to   string
}{
	{regexp.MustCompile(`^npm i(\s|$)`), "npm install$1"},
	{regexp.MustCompile(`^npm it(\s|$)`), "npm install-test$1"},
	{regexp.MustCompile(`^npm un(\s|$)`), "npm uninstall$1"},
	{regexp.MustCompile(`^yarn$`), "yarn install"},
	{regexp.MustCompile(`^yarn add(\s|$)`), "yarn add$1"},
	{regexp.MustCompile(`^git co(\s|$)`), "git checkout$1"},
	{regexp.MustCompile(`^git ci(\s|$)`), "git commit$1"},
	{regexp.MustCompile(`^git br(\s|$)`), "git branch$1"},
	{regexp.MustCompile(`^git st(\s|$)`), "git status$1"},
	{regexp.MustCompile(`^g(\s|$)`), "git$1"},
	{regexp.MustCompile(`^ll(\s|$)`), "ls -la$1"},
	{regexp.MustCompile(`^rm -r(\s|$)`), "rm -r$1"},
}

// ExpandAliases returns the variations of command that should be checked:
// the original form, followed by any alias expansions that apply.
func ExpandAliases(command string) []string {
	out := []string{command}
	for _, a := range aliasTable {
		if a.from.MatchString(command) {
			expanded := a.from.ReplaceAllString(command, a.to)
			if expanded != command {
				out = append(out, expanded)
			}
		}
	}
	return out
}
