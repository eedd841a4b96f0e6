package compiler

import (
	"regexp"
	"strings"

	"github.com/gzhole/veto/internal/policy"
)

// leadingNegations are stripped before verb matching so "don't delete test
// files" and "delete test files" extract the same action.
var leadingNegations = []string{"don't ", "do not ", "never ", "please don't ", "please "}

// verbRules is the fixed, ordered list of anchored verb → action pairs,
// tried in this order; the first pattern that matches wins.
var verbRules = []struct {
	re     *regexp.Regexp
	action policy.Action
}{
	{regexp.MustCompile(`^(delete|remove|rm)\b`), policy.ActionDelete},
	{regexp.MustCompile(`^(modify|edit|change|update|write|touch)\b`), policy.ActionModify},
	{regexp.MustCompile(`^(protect|preserve|keep|save)\b`), policy.ActionModify},
	{regexp.MustCompile(`^(run|execute|executing)\b`), policy.ActionExecute},
	{regexp.MustCompile(`^(prefer|use)\b`), policy.ActionExecute},
	{regexp.MustCompile(`^(read|view|access)\b`), policy.ActionRead},
}

// commandPreferenceKeywords flags a verb-stripped "no X" phrase as a command
// restriction rather than a content one, e.g. "no sudo", "no force push".
var commandPreferenceKeywords = []string{
	"sudo", "force push", "pip install", "global install", "npm", "yarn", "pnpm", "git push",
}

// fillerLeading and fillerTrailing are dropped from the target phrase for
// delete/modify/read restrictions only — a file-intent filler strip.
// Command and execute-classified restrictions keep their phrase intact
// since "pnpm" vs "prefer pnpm" both need to reach the command table.
var fillerLeading = regexp.MustCompile(`^(any|all|the)\s+`)
var fillerTrailing = regexp.MustCompile(`\s+(files?|directories?|folders?)$`)

// Extracted is the result of classifying a restriction string.
type Extracted struct {
	Action Action
	// Phrase is the target phrase the cascade looks builtins up by: the verb
	// (and any leading negation) stripped, with filler stripped for
	// file-intent actions.
	Phrase string
}

// Action is an alias of policy.Action. ExtractAction has no "unknown"
// result: a restriction with no recognised verb classifies as modify (or
// execute for a "no X" command keyword).
type Action = policy.Action

// ExtractAction classifies a normalised restriction string by its leading
// verb, returning the action and the remaining target phrase.
func ExtractAction(normalized string) Extracted {
	s := normalized
	for _, neg := range leadingNegations {
		if strings.HasPrefix(s, neg) {
			s = strings.TrimPrefix(s, neg)
			break
		}
	}

	action := policy.ActionModify
	matched := false
	for _, rule := range verbRules {
		if loc := rule.re.FindStringIndex(s); loc != nil {
			action = rule.action
			s = strings.TrimSpace(s[loc[1]:])
			matched = true
			break
		}
	}

	// An un-verbed "no X" restriction (e.g. "no lodash", "no sudo") defaults
	// to execute when X is a known command keyword, else modify — it's
	// describing code content to keep out of future edits.
	if !matched && strings.HasPrefix(s, "no ") {
		rest := strings.TrimPrefix(s, "no ")
		s = rest
		if isCommandPreference(rest) {
			action = policy.ActionExecute
		} else {
			action = policy.ActionModify
		}
	}

	if action == policy.ActionDelete || action == policy.ActionModify || action == policy.ActionRead {
		s = fillerLeading.ReplaceAllString(s, "")
		s = fillerTrailing.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
	}

	return Extracted{Action: action, Phrase: s}
}

func isCommandPreference(phrase string) bool {
	for _, kw := range commandPreferenceKeywords {
		if strings.Contains(phrase, kw) {
			return true
		}
	}
	return false
}
