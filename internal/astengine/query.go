package astengine

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/gzhole/veto/internal/policy"
)

// Match is one AST-rule hit with a source location — the AST-rule analogue
// of scanner.ContentMatch.
type Match struct {
	Rule   policy.ASTRule
	Line   int
	Column int
	Text   string
}

// Method identifies how a hybrid check was resolved.
type Method string

const (
	MethodAST     Method = "ast"
	MethodRegex   Method = "regex"
	MethodSkipped Method = "skipped"
)

// CheckResult is the outcome of CheckContentAST.
type CheckResult struct {
	Allowed   bool
	Method    Method
	Match     *Match
	TimingMs  float64
}

// CheckContentAST evaluates every ASTRule in p against content/filePath, in
// declared order, stopping at the first match. Each rule's regexPreFilter
// gates parsing: a rule whose pre-filter substring is absent from the raw
// content is skipped without ever invoking the parser, the dominant
// performance optimisation for large trees.
func (e *Engine) CheckContentAST(content []byte, filePath string, p *policy.Policy) CheckResult {
	if len(p.ASTRules) == 0 {
		return CheckResult{Allowed: true, Method: MethodSkipped}
	}

	lang, ok := DetectLanguage(filePath)
	if !ok {
		return CheckResult{Allowed: true, Method: MethodSkipped}
	}

	var parsed *ParseResult
	var totalTiming float64

	for _, rule := range p.ASTRules {
		if rule.RegexPreFilter != "" && !strings.Contains(string(content), rule.RegexPreFilter) {
			continue
		}
		if !languageApplies(lang, rule.Languages) {
			continue
		}

		if parsed == nil {
			pr, ok := e.Parse(filePath, content)
			if !ok {
				// grammar missing or parse failed: rule skipped, never blocks.
				continue
			}
			parsed = pr
			totalTiming = pr.ParseTimeMs
		}

		m := runQuery(parsed.Tree, content, rule)
		if m != nil {
			return CheckResult{Allowed: false, Method: MethodAST, Match: m, TimingMs: totalTiming}
		}
	}

	return CheckResult{Allowed: true, Method: MethodAST, TimingMs: totalTiming}
}

func languageApplies(lang Lang, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, string(lang)) {
			return true
		}
	}
	return false
}

// runQuery compiles and executes rule.Query against tree, returning the
// first capture that satisfies every #eq?/#match? predicate, or nil.
func runQuery(tree *sitter.Tree, content []byte, rule policy.ASTRule) *Match {
	q, err := sitter.NewQuery([]byte(rule.Query), tree.Language())
	if err != nil {
		return nil
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, content)
		if len(m.Captures) == 0 {
			continue
		}

		node := m.Captures[0].Node
		point := node.StartPoint()
		return &Match{
			Rule:   rule,
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
			Text:   node.Content(content),
		}
	}
	return nil
}
