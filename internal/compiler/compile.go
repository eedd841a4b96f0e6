// Package compiler is the cascade that turns a natural-language restriction
// string into a compiled policy.Policy: a fixed-cost builtin lookup first,
// a content-addressed cache second, and a schema-constrained LLM call
// last, paid only when the first two both miss.
package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gzhole/veto/internal/builtin"
	"github.com/gzhole/veto/internal/compilecache"
	"github.com/gzhole/veto/internal/llm"
	"github.com/gzhole/veto/internal/policy"
	"github.com/gzhole/veto/internal/policypack"
)

// ErrEmptyRestriction is returned for a blank or whitespace-only input.
var ErrEmptyRestriction = errors.New("compiler: restriction is empty")

// LLM is the subset of *llm.Client the cascade depends on, so callers can
// substitute a test double without an API key.
type LLM interface {
	Compile(ctx context.Context, restriction string) (policy.Policy, error)
}

// Source identifies which cascade tier produced a Policy.
type Source string

const (
	SourceBuiltin Source = "builtin"
	SourcePack    Source = "pack"
	SourceCache   Source = "cache"
	SourceLLM     Source = "llm"
)

// Result is a compiled Policy plus the tier that resolved it, surfaced by
// the CLI's "compile" operation for diagnostics.
type Result struct {
	Policy policy.Policy
	Source Source
}

// Compiler runs the cascade. A nil cache or llm is valid: Compile then skips
// straight to whichever tier is still wired, letting the CLI run
// builtin-only compilation without an API key or cache file.
type Compiler struct {
	Cache *compilecache.Cache
	LLM   LLM
	// Packs extends the baked-in builtin tables with entries loaded from
	// ~/.veto/packs/*.yaml. Nil means no packs are loaded.
	Packs *policypack.Tables
}

// Compile classifies restriction, then tries the builtin tables, any loaded
// policy packs, the compile cache, and finally the LLM tier, in that order,
// returning the first hit.
func (c *Compiler) Compile(ctx context.Context, restriction string) (Result, error) {
	normalized := builtin.NormalizePhrase(restriction)
	if normalized == "" {
		return Result{}, ErrEmptyRestriction
	}

	ext := ExtractAction(normalized)

	if p, ok := lookupBuiltins(ext.Action, ext.Phrase); ok {
		return Result{Policy: p, Source: SourceBuiltin}, nil
	}
	// Second builtin pass: some phrases (e.g. "prefer pnpm") only resolve
	// against the full original restriction, not the verb-stripped target.
	if p, ok := lookupBuiltins(ext.Action, normalized); ok {
		return Result{Policy: p, Source: SourceBuiltin}, nil
	}

	if c.Packs != nil {
		if p, ok := lookupPacks(ext.Action, ext.Phrase, c.Packs); ok {
			return Result{Policy: p, Source: SourcePack}, nil
		}
		if p, ok := lookupPacks(ext.Action, normalized, c.Packs); ok {
			return Result{Policy: p, Source: SourcePack}, nil
		}
	}

	key := compilecache.Key(normalized)
	if c.Cache != nil {
		if p, ok := c.Cache.Get(key); ok {
			if err := p.Compile(); err != nil {
				return Result{}, fmt.Errorf("compiler: cached policy for %q no longer compiles: %w", restriction, err)
			}
			return Result{Policy: p, Source: SourceCache}, nil
		}
	}

	if c.LLM == nil {
		return Result{}, llm.ErrMissingAPIKey
	}

	p, err := c.LLM.Compile(ctx, restriction)
	if err != nil {
		return Result{}, err
	}
	if err := p.Compile(); err != nil {
		return Result{}, fmt.Errorf("compiler: llm-produced policy for %q failed to compile: %w", restriction, err)
	}

	if c.Cache != nil {
		c.Cache.Put(key, p)
		_ = c.Cache.Flush()
	}
	return Result{Policy: p, Source: SourceLLM}, nil
}

// lookupBuiltins tries the AST table first (phrase-shape "no X" restrictions
// that name a library or code pattern), then the file table, then the
// command table, assembling a Policy from whichever hits.
func lookupBuiltins(action policy.Action, phrase string) (policy.Policy, bool) {
	if astPhrase := builtin.NormalizeASTPhrase(phrase); astPhrase != "" {
		if b, ok := builtin.LookupAST(astPhrase); ok {
			p := policy.Policy{
				Action:      action,
				Description: b.Description,
				ASTRules:    b.ASTRules,
			}
			if err := p.Compile(); err == nil {
				return p, true
			}
		}
	}

	if b, ok := builtin.LookupFile(phrase); ok {
		p := policy.Policy{
			Action:       action,
			Include:      b.Include,
			Exclude:      b.Exclude,
			Description:  b.Description,
			CommandRules: b.CommandRules,
		}
		if err := p.Compile(); err == nil {
			return p, true
		}
	}

	if b, ok := builtin.LookupCommand(phrase); ok {
		p := policy.Policy{
			Action:       action,
			Description:  b.Description,
			CommandRules: b.CommandRules,
		}
		if err := p.Compile(); err == nil {
			return p, true
		}
	}

	return policy.Policy{}, false
}

// lookupPacks mirrors lookupBuiltins against the pack-contributed tables:
// AST entries first, then file/command entries.
func lookupPacks(action policy.Action, phrase string, packs *policypack.Tables) (policy.Policy, bool) {
	if astPhrase := builtin.NormalizeASTPhrase(phrase); astPhrase != "" {
		if b, ok := packs.AST[astPhrase]; ok {
			p := policy.Policy{Action: action, Description: b.Description, ASTRules: b.ASTRules}
			if err := p.Compile(); err == nil {
				return p, true
			}
		}
	}

	if b, ok := packs.File[phrase]; ok {
		p := policy.Policy{
			Action:       action,
			Include:      b.Include,
			Exclude:      b.Exclude,
			Description:  b.Description,
			CommandRules: b.CommandRules,
		}
		if err := p.Compile(); err == nil {
			return p, true
		}
	}

	return policy.Policy{}, false
}
