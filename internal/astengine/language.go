// Package astengine implements the AST Engine: language detection, lazy
// tree-sitter grammar loading, per-file parse caching, and S-expression
// query execution against the parsed tree.
//
// Grammar loading uses github.com/smacker/go-tree-sitter, the standard
// real-world Go tree-sitter binding.
package astengine

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Lang is one of the closed set of languages the AST Engine recognises.
type Lang string

const (
	LangTypeScript Lang = "typescript"
	LangTSX        Lang = "tsx"
	LangJavaScript Lang = "javascript"
	LangJSX        Lang = "jsx"
	LangPython     Lang = "python"
	LangGo         Lang = "go"
	LangRust       Lang = "rust"
	LangJava       Lang = "java"
	LangKotlin     Lang = "kotlin"
	LangC          Lang = "c"
	LangCPP        Lang = "cpp"
	LangRuby       Lang = "ruby"
	LangPHP        Lang = "php"
	LangBash       Lang = "bash"
)

// extLang maps a file extension (lower-case, with leading dot) to Lang.
var extLang = map[string]Lang{
	".ts":  LangTypeScript,
	".mts": LangTypeScript,
	".cts": LangTypeScript,
	".tsx": LangTSX,
	".js":  LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".jsx": LangJSX,
	".py":  LangPython,
	".pyw": LangPython,
	".pyi": LangPython,
	".go":  LangGo,
	".rs":  LangRust,
	".java": LangJava,
	".kt":  LangKotlin,
	".kts": LangKotlin,
	".c":   LangC,
	".h":   LangC,
	".cpp": LangCPP,
	".cc":  LangCPP,
	".cxx": LangCPP,
	".hpp": LangCPP,
	".rb":  LangRuby,
	".php": LangPHP,
	".sh":  LangBash,
	".bash": LangBash,
}

// DetectLanguage returns the Lang for path's extension, or "" (and false)
// if the extension is not in the recognised closed set — such files skip
// AST evaluation entirely.
func DetectLanguage(path string) (Lang, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := extLang[ext]
	return l, ok
}

// grammarLoader lazily constructs the *sitter.Language for a Lang. JSX
// shares JavaScript's grammar (tree-sitter-javascript parses JSX already).
var grammarLoader = map[Lang]func() *sitter.Language{
	LangTypeScript: typescript.GetLanguage,
	LangTSX:        tsx.GetLanguage,
	LangJavaScript: javascript.GetLanguage,
	LangJSX:        javascript.GetLanguage,
	LangPython:     python.GetLanguage,
	LangGo:         golang.GetLanguage,
	LangRust:       rust.GetLanguage,
	LangJava:       java.GetLanguage,
	LangKotlin:     kotlin.GetLanguage,
	LangC:          c.GetLanguage,
	LangCPP:        cpp.GetLanguage,
	LangRuby:       ruby.GetLanguage,
	LangPHP:        php.GetLanguage,
	LangBash:       bash.GetLanguage,
}

// grammarRegistry caches loaded grammar handles and failed-load state. A
// failed load disables rules for that language without failing compilation:
// the rule is skipped with an informational warning instead.
type grammarRegistry struct {
	loaded map[Lang]*sitter.Language
	failed map[Lang]bool
}

func newGrammarRegistry() *grammarRegistry {
	return &grammarRegistry{
		loaded: make(map[Lang]*sitter.Language),
		failed: make(map[Lang]bool),
	}
}

// get returns the grammar for lang, loading it on first use. ok is false
// if lang is unknown or its grammar failed to load.
func (r *grammarRegistry) get(lang Lang) (*sitter.Language, bool) {
	if g, ok := r.loaded[lang]; ok {
		return g, true
	}
	if r.failed[lang] {
		return nil, false
	}

	loader, ok := grammarLoader[lang]
	if !ok {
		r.failed[lang] = true
		return nil, false
	}

	g := loader()
	if g == nil {
		r.failed[lang] = true
		return nil, false
	}
	r.loaded[lang] = g
	return g, true
}
