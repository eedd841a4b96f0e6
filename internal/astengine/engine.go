package astengine

import (
	"context"
	"fmt"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Tree        *sitter.Tree
	Language    Lang
	ParseTimeMs float64
}

// Engine owns one parser instance per language (reused across calls) plus
// the per-path parse cache. Callers wanting concurrent parsing must
// partition files across independent Engines.
type Engine struct {
	grammars *grammarRegistry
	parsers  map[Lang]*sitter.Parser
	cache    *parseCache

	// Warnings accumulates informational messages for grammar loads that
	// failed — rules for that language are skipped, never a hard error.
	Warnings []string
}

// NewEngine creates an AST Engine with an empty cache and no loaded
// grammars; grammars are resolved lazily on first use.
func NewEngine() *Engine {
	return &Engine{
		grammars: newGrammarRegistry(),
		parsers:  make(map[Lang]*sitter.Parser),
		cache:    newParseCache(),
	}
}

// ClearCache drops every cached parse tree.
func (e *Engine) ClearCache() { e.cache.Clear() }

// ClearCachePath drops the cached parse tree for a single path.
func (e *Engine) ClearCachePath(path string) { e.cache.ClearPath(path) }

// Parse parses content for the file at absPath, detected via its
// extension. It returns (nil, false) if the extension isn't recognised, or
// if the grammar for the detected language failed to load (a warning is
// recorded in e.Warnings in that case, never a hard failure).
func (e *Engine) Parse(absPath string, content []byte) (*ParseResult, bool) {
	lang, ok := DetectLanguage(absPath)
	if !ok {
		return nil, false
	}

	if tree := e.cache.lookup(absPath, content); tree != nil {
		return &ParseResult{Tree: tree, Language: lang, ParseTimeMs: 0}, true
	}

	grammar, ok := e.grammars.get(lang)
	if !ok {
		e.Warnings = append(e.Warnings, fmt.Sprintf("astengine: grammar for %s unavailable, rule skipped", lang))
		return nil, false
	}

	parser, ok := e.parsers[lang]
	if !ok {
		parser = sitter.NewParser()
		parser.SetLanguage(grammar)
		e.parsers[lang] = parser
	}

	start := time.Now()
	tree, err := parser.ParseCtx(context.Background(), nil, content)
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		e.Warnings = append(e.Warnings, fmt.Sprintf("astengine: parse failed for %s: %v", absPath, err))
		return nil, false
	}

	e.cache.store(absPath, content, lang, tree)
	return &ParseResult{Tree: tree, Language: lang, ParseTimeMs: elapsed}, true
}
