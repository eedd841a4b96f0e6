// Package shellcmd implements the Command Parser: splitting a composite
// shell string into the simple commands it would run, command-pattern
// matching, alias expansion, and action-scoped file-target extraction.
//
// Splitting uses mvdan.cc/sh/v3/syntax for a real shell AST instead of
// hand-rolled separator splitting, so quoted strings and subshell
// groupings are never mis-split.
package shellcmd

import (
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// maxSubshellDepth bounds the recursive expansion of `bash -c "..."` style
// wrappers.
const maxSubshellDepth = 4

// subshellWrapperRe recognises a small whitelist of wrapper forms:
// `(bash|sh|zsh) [-c] "…"` or the same with single quotes. Broader forms
// like `env VAR=1 bash -c …` are intentionally not recognised.
var subshellWrapperRe = regexp.MustCompile(`^(bash|sh|zsh)\s+(-c\s+)?['"](.*)['"]$`)

// SplitCommands produces the ordered list of simple commands a composite
// shell string would execute, recognising &&, ||, ;, and unquoted |.
// Quoted strings and (...)/{...} groupings are preserved intact. Subshell
// wrapper commands additionally contribute their inner commands, in
// addition to the wrapper itself.
func SplitCommands(composite string) []string {
	return splitCommandsDepth(composite, 0)
}

func splitCommandsDepth(composite string, depth int) []string {
	composite = strings.TrimSpace(composite)
	if composite == "" {
		return nil
	}
	if depth >= maxSubshellDepth {
		return []string{composite}
	}

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash), syntax.KeepComments(false))
	file, err := parser.Parse(strings.NewReader(composite), "")
	if err != nil {
		return fallbackSplit(composite)
	}

	var out []string
	for _, stmt := range file.Stmts {
		out = append(out, walkStmt(stmt, composite, depth)...)
	}
	if len(out) == 0 {
		return fallbackSplit(composite)
	}
	return out
}

// walkStmt flattens a statement into the ordered list of simple commands it
// contains, expanding subshell wrappers as it goes.
func walkStmt(stmt *syntax.Stmt, raw string, depth int) []string {
	if stmt == nil || stmt.Cmd == nil {
		return nil
	}

	switch cmd := stmt.Cmd.(type) {
	case *syntax.BinaryCmd:
		var out []string
		out = append(out, walkStmt(cmd.X, raw, depth)...)
		out = append(out, walkStmt(cmd.Y, raw, depth)...)
		return out

	case *syntax.Subshell, *syntax.Block:
		// (...) and {...} groupings stay one command; separators inside
		// them do not split.
		return []string{sliceStmt(stmt, raw)}

	case *syntax.CallExpr:
		text := sliceStmt(stmt, raw)
		out := []string{text}
		if inner := subshellInnerCommand(text); inner != "" {
			out = append(out, splitCommandsDepth(inner, depth+1)...)
		}
		return out

	default:
		return []string{sliceStmt(stmt, raw)}
	}
}

// sliceStmt extracts the exact source text of a statement (preserving
// quoting) using the parser's byte offsets, without the trailing ';'
// separator that the statement's end position covers.
func sliceStmt(stmt *syntax.Stmt, raw string) string {
	start := int(stmt.Pos().Offset())
	end := int(stmt.End().Offset())
	if start < 0 || end > len(raw) || start > end {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw[start:end]), ";"))
}

// subshellInnerCommand recognises `(bash|sh|zsh) [-c] "…"` and returns the
// captured inner string, or "" if text doesn't match the wrapper whitelist.
func subshellInnerCommand(text string) string {
	m := subshellWrapperRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[3]
}

// fallbackSplit is used when the shell parser itself rejects the input
// (e.g. genuinely malformed shell syntax). It falls back to a conservative
// split on the recognised separators outside of quotes, never attempting
// to interpret subshells.
func fallbackSplit(composite string) []string {
	var out []string
	var cur strings.Builder
	var quote rune
	depth := 0

	flush := func() {
		s := strings.TrimSpace(cur.String())
		if s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	runes := []rune(composite)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
			cur.WriteRune(r)
		case r == '(' || r == '{':
			depth++
			cur.WriteRune(r)
		case r == ')' || r == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case depth > 0:
			cur.WriteRune(r)
		case r == ';':
			flush()
		case r == '&' && i+1 < len(runes) && runes[i+1] == '&':
			flush()
			i++
		case r == '|' && i+1 < len(runes) && runes[i+1] == '|':
			flush()
			i++
		case r == '|':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
