package builtin

import "github.com/gzhole/veto/internal/policy"

// ASTBuiltin is the AST-restriction shape a phrase resolves to.
type ASTBuiltin struct {
	Description string
	ASTRules    []policy.ASTRule
}

// ASTPhrases is the AST builtin table, keyed by normalised (and
// negation-rewritten) phrase. Queries target the languages a restriction
// is meaningful for; language-prefixed entries (e.g. "no python eval")
// scope to a single language.
var ASTPhrases = map[string]ASTBuiltin{
	"no lodash": {
		Description: "lodash is disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-lodash-import",
				Query:          `(import_statement source: (string (string_fragment) @src) (#match? @src "lodash"))`,
				Languages:      []string{"javascript", "jsx", "typescript", "tsx"},
				Reason:         "lodash import is disallowed",
				Suggest:        "use native Array/Object methods",
				RegexPreFilter: "lodash",
			},
		},
	},
	"no any types": {
		Description: "explicit any types are disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-any-type",
				Query:          `(type_annotation (predefined_type) @t (#eq? @t "any"))`,
				Languages:      []string{"typescript", "tsx"},
				Reason:         "explicit any type is disallowed",
				Suggest:        "use a precise type or unknown",
				RegexPreFilter: "any",
			},
		},
	},
	"no console": {
		Description: "console.* calls are disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID: "ast-no-console-log",
				Query: `(call_expression
					function: (member_expression
						object: (identifier) @o (#eq? @o "console")
						property: (property_identifier) @p))`,
				Languages:      []string{"javascript", "jsx", "typescript", "tsx"},
				Reason:         "console.* calls are disallowed",
				Suggest:        "use the project logger",
				RegexPreFilter: "console.",
			},
		},
	},
	"no react class components": {
		Description: "React class components are disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID: "ast-no-react-class-component",
				Query: `(class_declaration
					(class_heritage (extends_clause value: (_) @base)))`,
				Languages:      []string{"jsx", "tsx", "javascript", "typescript"},
				Reason:         "React class components are disallowed",
				Suggest:        "use a function component with hooks",
				RegexPreFilter: "extends",
			},
		},
	},
	"no eval": {
		Description: "eval is disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-eval-call",
				Query:          `(call_expression function: (identifier) @f (#eq? @f "eval"))`,
				Languages:      []string{"javascript", "jsx", "typescript", "tsx"},
				Reason:         "eval() is disallowed",
				Suggest:        "avoid dynamic code execution",
				RegexPreFilter: "eval",
			},
		},
	},
	"no python eval": {
		Description: "eval is disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-python-eval",
				Query:          `(call function: (identifier) @f (#eq? @f "eval"))`,
				Languages:      []string{"python"},
				Reason:         "eval() is disallowed",
				Suggest:        "avoid dynamic code execution",
				RegexPreFilter: "eval",
			},
		},
	},
	"no go panic": {
		Description: "panic is disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-go-panic",
				Query:          `(call_expression function: (identifier) @f (#eq? @f "panic"))`,
				Languages:      []string{"go"},
				Reason:         "panic is disallowed, return an error instead",
				Suggest:        "return an error",
				RegexPreFilter: "panic(",
			},
		},
	},
	"no rust unwrap": {
		Description: "unwrap is disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-rust-unwrap",
				Query:          `(call_expression function: (field_expression field: (field_identifier) @f (#eq? @f "unwrap")))`,
				Languages:      []string{"rust"},
				Reason:         "unwrap() is disallowed, handle the Result/Option explicitly",
				Suggest:        "use ? or explicit match handling",
				RegexPreFilter: "unwrap(",
			},
		},
	},
	"no hardcoded secrets": {
		Description: "hardcoded secret-like string assignments are disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID: "ast-no-hardcoded-secret",
				Query: `(variable_declarator
					name: (identifier) @n (#match? @n "(?i)(secret|token|password|apikey)")
					value: (string) @v)`,
				Languages:      []string{"javascript", "jsx", "typescript", "tsx"},
				Reason:         "hardcoded secret-like value is disallowed",
				Suggest:        "load from environment or a secrets manager",
				RegexPreFilter: "",
			},
		},
	},
	"no debugger": {
		Description: "debugger statements are disallowed",
		ASTRules: []policy.ASTRule{
			{
				ID:             "ast-no-debugger",
				Query:          `(debugger_statement) @d`,
				Languages:      []string{"javascript", "jsx", "typescript", "tsx"},
				Reason:         "debugger statements are disallowed",
				Suggest:        "remove before committing",
				RegexPreFilter: "debugger",
			},
		},
	},
}

// LookupAST resolves an already-normalised AST phrase (see
// NormalizeASTPhrase) to an ASTBuiltin.
func LookupAST(normalizedPhrase string) (ASTBuiltin, bool) {
	table := make(map[string]bool, len(ASTPhrases))
	for k := range ASTPhrases {
		table[k] = true
	}
	key, ok := lookupContainment(table, normalizedPhrase)
	if !ok {
		return ASTBuiltin{}, false
	}
	return ASTPhrases[key], true
}
