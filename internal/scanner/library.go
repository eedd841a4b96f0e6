package scanner

import "github.com/gzhole/veto/internal/policy"

// PatternSet is a named, curated collection of ContentRule variants that
// together catch every common form of one restriction. Each variant is its
// own regex so exceptions and file-type scoping can differ per form if a
// future pack needs it; Rules flattens a PatternSet into ContentRules.
type PatternSet struct {
	Name      string
	FileTypes []string
	Variants  []Variant
}

// Variant is one regex form within a PatternSet, with its own reason/suggest.
type Variant struct {
	Pattern string
	Reason  string
	Suggest string
}

// Rules flattens the set into ContentRules for a given mode.
func (s PatternSet) Rules(mode policy.ContentMode) []policy.ContentRule {
	out := make([]policy.ContentRule, 0, len(s.Variants))
	for _, v := range s.Variants {
		out = append(out, policy.ContentRule{
			Pattern:   v.Pattern,
			FileTypes: s.FileTypes,
			Reason:    v.Reason,
			Suggest:   v.Suggest,
			Mode:      mode,
		})
	}
	return out
}

// jsTsFiles scopes a pattern set to JS/TS source.
var jsTsFiles = []string{"*.js", "*.jsx", "*.ts", "*.tsx", "*.mjs", "*.cjs"}

// Library is the curated set of named pattern sets shipped with the
// system, keyed by the same normalised phrase the builtin tables use.
var Library = map[string]PatternSet{
	"no lodash": {
		Name:      "no lodash",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `import\s+_\s+from\s+['"]lodash['"]`, Reason: "lodash default import is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `import\s+\{[^}]*\}\s+from\s+['"]lodash['"]`, Reason: "lodash named import is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `import\s+\*\s+as\s+_\s+from\s+['"]lodash['"]`, Reason: "lodash namespace import is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `from\s+['"]lodash/\w+['"]`, Reason: "lodash submodule import is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `require\(\s*['"]lodash['"]\s*\)`, Reason: "lodash require is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `require\(\s*['"]lodash/\w+['"]\s*\)`, Reason: "lodash submodule require is disallowed", Suggest: "use native Array/Object methods"},
			{Pattern: `import\(\s*['"]lodash['"]\s*\)`, Reason: "dynamic lodash import is disallowed", Suggest: "use native Array/Object methods"},
		},
	},
	"no any types": {
		Name:      "no any types",
		FileTypes: []string{"*.ts", "*.tsx"},
		Variants: []Variant{
			{Pattern: `:\s*any\b`, Reason: "explicit any type is disallowed", Suggest: "use a precise type or unknown"},
			{Pattern: `as\s+any\b`, Reason: "any type assertion is disallowed", Suggest: "use a precise type or unknown"},
			{Pattern: `<any>`, Reason: "any type cast is disallowed", Suggest: "use a precise type or unknown"},
			{Pattern: `Array<any>`, Reason: "any[] is disallowed", Suggest: "use a precise element type"},
		},
	},
	"no console": {
		Name:      "no console",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `console\.log\s*\(`, Reason: "console.log is disallowed", Suggest: "use the project logger"},
			{Pattern: `console\.debug\s*\(`, Reason: "console.debug is disallowed", Suggest: "use the project logger"},
			{Pattern: `console\.info\s*\(`, Reason: "console.info is disallowed", Suggest: "use the project logger"},
			{Pattern: `console\.warn\s*\(`, Reason: "console.warn is disallowed", Suggest: "use the project logger"},
			{Pattern: `console\.error\s*\(`, Reason: "console.error is disallowed", Suggest: "use the project logger"},
		},
	},
	"no react class components": {
		Name:      "no react class components",
		FileTypes: []string{"*.jsx", "*.tsx"},
		Variants: []Variant{
			{Pattern: `class\s+\w+\s+extends\s+React\.Component`, Reason: "React class components are disallowed", Suggest: "use a function component with hooks"},
			{Pattern: `class\s+\w+\s+extends\s+Component\b`, Reason: "React class components are disallowed", Suggest: "use a function component with hooks"},
			{Pattern: `class\s+\w+\s+extends\s+React\.PureComponent`, Reason: "React class components are disallowed", Suggest: "use a function component with hooks"},
		},
	},
	"no eval": {
		Name:      "no eval",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `\beval\s*\(`, Reason: "eval() is disallowed", Suggest: "avoid dynamic code execution"},
			{Pattern: `new\s+Function\s*\(`, Reason: "new Function() is disallowed", Suggest: "avoid dynamic code execution"},
		},
	},
	"no moment": {
		Name:      "no moment",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `import\s+moment\s+from\s+['"]moment['"]`, Reason: "moment is disallowed", Suggest: "use date-fns or Temporal"},
			{Pattern: `require\(\s*['"]moment['"]\s*\)`, Reason: "moment is disallowed", Suggest: "use date-fns or Temporal"},
		},
	},
	"no innerhtml": {
		Name:      "no innerhtml",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `\.innerHTML\s*=`, Reason: "innerHTML assignment is disallowed", Suggest: "use textContent or a sanitising renderer"},
			{Pattern: `dangerouslySetInnerHTML`, Reason: "dangerouslySetInnerHTML is disallowed", Suggest: "use a sanitising renderer"},
		},
	},
	"no debugger": {
		Name:      "no debugger",
		FileTypes: jsTsFiles,
		Variants: []Variant{
			{Pattern: `\bdebugger\b`, Reason: "debugger statements are disallowed", Suggest: "remove before committing"},
		},
	},
}
