// Package policy defines the compiled policy value and its wire types.
//
// A Policy is produced once by the compiler cascade (internal/compiler) and
// is immutable from that point on: every matcher, scanner, and daemon in
// this repository consumes a *Policy by value-semantics pointer and never
// mutates it. New versions replace old ones; they are never patched in place.
package policy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
)

// Action is the operation class a Policy restricts.
type Action string

const (
	ActionDelete  Action = "delete"
	ActionModify  Action = "modify"
	ActionExecute Action = "execute"
	ActionRead    Action = "read"
)

// ContentMode controls how the Content Scanner preprocesses a file before
// running a ContentRule's pattern against it.
type ContentMode string

const (
	ModeFast   ContentMode = "fast"
	ModeStrict ContentMode = "strict"
)

// CommandRule blocks a shell-command variant produced by the Command Parser.
type CommandRule struct {
	Block   []string `json:"block" yaml:"block"`
	Reason  string   `json:"reason" yaml:"reason"`
	Suggest string   `json:"suggest,omitempty" yaml:"suggest,omitempty"`
}

// ContentRule matches a regex against (optionally stripped) file content.
type ContentRule struct {
	Pattern    string      `json:"pattern" yaml:"pattern"`
	FileTypes  []string    `json:"fileTypes,omitempty" yaml:"fileTypes,omitempty"`
	Reason     string      `json:"reason" yaml:"reason"`
	Suggest    string      `json:"suggest,omitempty" yaml:"suggest,omitempty"`
	Mode       ContentMode `json:"mode,omitempty" yaml:"mode,omitempty"`
	Exceptions []string    `json:"exceptions,omitempty" yaml:"exceptions,omitempty"`
}

// ASTRule matches a tree-sitter S-expression query against a parsed file.
type ASTRule struct {
	ID             string   `json:"id" yaml:"id"`
	Query          string   `json:"query" yaml:"query"`
	Languages      []string `json:"languages" yaml:"languages"`
	Reason         string   `json:"reason" yaml:"reason"`
	Suggest        string   `json:"suggest,omitempty" yaml:"suggest,omitempty"`
	RegexPreFilter string   `json:"regexPreFilter,omitempty" yaml:"regexPreFilter,omitempty"`
}

// Policy is the compiled, executable representation of a natural-language
// restriction.
type Policy struct {
	Action       Action        `json:"action" yaml:"action"`
	Include      []string      `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude      []string      `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Description  string        `json:"description" yaml:"description"`
	CommandRules []CommandRule `json:"commandRules,omitempty" yaml:"commandRules,omitempty"`
	ContentRules []ContentRule `json:"contentRules,omitempty" yaml:"contentRules,omitempty"`
	ASTRules     []ASTRule     `json:"astRules,omitempty" yaml:"astRules,omitempty"`

	// compiled holds the globs/regexes compiled once at construction time so
	// that evaluation is never allowed to fail: a regex that fails to
	// compile is reported as a compile error, never a runtime surprise.
	compiled *compiledPolicy
}

type compiledPolicy struct {
	include    []glob.Glob
	exclude    []glob.Glob
	contentRx  []*regexp.Regexp
	exceptRx   [][]*regexp.Regexp
	fileTypes  [][]glob.Glob
}

// Compile validates and pre-compiles every glob and regex carried by the
// Policy. It must be called once, by the compiler cascade, before the
// Policy is handed to any matcher, scanner, daemon, or synthesiser.
func (p *Policy) Compile() error {
	if p.Action == "" {
		return fmt.Errorf("policy: action is required")
	}
	if len(p.Include) == 0 && len(p.CommandRules) == 0 && len(p.ContentRules) == 0 && len(p.ASTRules) == 0 {
		return fmt.Errorf("policy: at least one of include, commandRules, contentRules, or astRules is required")
	}

	cp := &compiledPolicy{}

	for _, pat := range p.Include {
		g, err := compileGlob(pat)
		if err != nil {
			return fmt.Errorf("policy: invalid include pattern %q: %w", pat, err)
		}
		cp.include = append(cp.include, g)
	}
	for _, pat := range p.Exclude {
		g, err := compileGlob(pat)
		if err != nil {
			return fmt.Errorf("policy: invalid exclude pattern %q: %w", pat, err)
		}
		cp.exclude = append(cp.exclude, g)
	}

	for i, rule := range p.ContentRules {
		rx, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("policy: contentRules[%d]: invalid pattern %q: %w", i, rule.Pattern, err)
		}
		cp.contentRx = append(cp.contentRx, rx)

		var exRx []*regexp.Regexp
		for _, ex := range rule.Exceptions {
			erx, err := regexp.Compile(ex)
			if err != nil {
				return fmt.Errorf("policy: contentRules[%d]: invalid exception %q: %w", i, ex, err)
			}
			exRx = append(exRx, erx)
		}
		cp.exceptRx = append(cp.exceptRx, exRx)

		var ftGlobs []glob.Glob
		for _, ft := range rule.FileTypes {
			g, err := compileGlob(ft)
			if err != nil {
				return fmt.Errorf("policy: contentRules[%d]: invalid fileTypes pattern %q: %w", i, ft, err)
			}
			ftGlobs = append(ftGlobs, g)
		}
		cp.fileTypes = append(cp.fileTypes, ftGlobs)
	}

	for i, rule := range p.ASTRules {
		if rule.Query == "" {
			return fmt.Errorf("policy: astRules[%d]: query is required", i)
		}
		if len(rule.Languages) == 0 {
			return fmt.Errorf("policy: astRules[%d]: languages is required", i)
		}
	}

	for i, rule := range p.CommandRules {
		if len(rule.Block) == 0 {
			return fmt.Errorf("policy: commandRules[%d]: block is required", i)
		}
		for _, b := range rule.Block {
			if _, err := compileGlob(b); err != nil {
				return fmt.Errorf("policy: commandRules[%d]: invalid block pattern %q: %w", i, b, err)
			}
		}
	}

	p.compiled = cp
	return nil
}

// compileGlob builds a glob.Glob using '/' as the only path separator so
// that '*' never crosses a directory boundary and '**' matches any number
// of segments (gobwas/glob requires explicit separators to distinguish the
// two). The pattern is lower-cased, like every path matcher.Normalize
// produces, so matching is case-insensitive.
func compileGlob(pattern string) (glob.Glob, error) {
	return glob.Compile(strings.ToLower(pattern), '/')
}

// IncludeGlobs returns the compiled include globs. Compile must have run.
func (p *Policy) IncludeGlobs() []glob.Glob { return p.compiled.include }

// ExcludeGlobs returns the compiled exclude globs. Compile must have run.
func (p *Policy) ExcludeGlobs() []glob.Glob { return p.compiled.exclude }

// ContentRegexp returns the compiled regexp for ContentRules[i].
func (p *Policy) ContentRegexp(i int) *regexp.Regexp { return p.compiled.contentRx[i] }

// ExceptionRegexps returns the compiled exception regexps for ContentRules[i].
func (p *Policy) ExceptionRegexps(i int) []*regexp.Regexp { return p.compiled.exceptRx[i] }

// FileTypeGlobs returns the compiled fileTypes globs for ContentRules[i].
func (p *Policy) FileTypeGlobs(i int) []glob.Glob { return p.compiled.fileTypes[i] }

// CheckRequest is the daemon wire request.
type CheckRequest struct {
	Action  string `json:"action,omitempty"`
	Target  string `json:"target,omitempty"`
	Command string `json:"command,omitempty"`
}

// CheckResponse is the daemon wire response.
type CheckResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Suggest string `json:"suggest,omitempty"`
}
