package scanner

import (
	"testing"

	"github.com/gzhole/veto/internal/policy"
)

func noLodashPolicy(t *testing.T, mode policy.ContentMode) *policy.Policy {
	t.Helper()
	p := &policy.Policy{
		Action:      policy.ActionModify,
		Description: "lodash is disallowed",
		ContentRules: []policy.ContentRule{
			{
				Pattern:   `import\s+_\s+from\s+['"]lodash['"]`,
				FileTypes: []string{"*.ts", "*.js"},
				Reason:    "lodash import is disallowed",
				Mode:      mode,
			},
		},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	return p
}

func TestCheck_FastModeFindsMatchAtLine1(t *testing.T) {
	p := noLodashPolicy(t, policy.ModeFast)
	content := "import _ from 'lodash';\nconst x = 1;"
	m := Check(content, "a.ts", p)
	if m == nil {
		t.Fatalf("expected a match")
	}
	if m.Line != 1 {
		t.Errorf("expected line 1, got %d", m.Line)
	}
}

func TestCheck_StrictModeIgnoresStringLiteral(t *testing.T) {
	p := noLodashPolicy(t, policy.ModeStrict)
	content := `const x = "import from lodash";`
	if m := Check(content, "a.ts", p); m != nil {
		t.Errorf("strict mode should ignore matches inside string literals, got %+v", m)
	}
}

func TestCheck_FileTypeGating(t *testing.T) {
	p := noLodashPolicy(t, policy.ModeFast)
	content := "import _ from 'lodash';"
	if m := Check(content, "a.py", p); m != nil {
		t.Errorf("rule scoped to *.ts/*.js should not apply to a.py, got %+v", m)
	}
}

func TestCheck_ExceptionWindowSuppressesMatch(t *testing.T) {
	p := &policy.Policy{
		Action:      policy.ActionModify,
		Description: "no eval",
		ContentRules: []policy.ContentRule{
			{
				Pattern:    `eval\(`,
				Reason:     "eval is disallowed",
				Exceptions: []string{`// veto-allow-eval`},
			},
		},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	content := "eval(x); // veto-allow-eval"
	if m := Check(content, "a.js", p); m != nil {
		t.Errorf("exception in the surrounding window should suppress the match, got %+v", m)
	}
}

func TestStrip_PreservesNewlinesForLineAccuracy(t *testing.T) {
	content := "const a = 1;\n/* block\ncomment */\nconst b = eval(1);"
	stripped := Strip(content)
	origLines := countLines(content)
	strippedLines := countLines(stripped)
	if origLines != strippedLines {
		t.Fatalf("Strip must preserve line count: orig=%d stripped=%d", origLines, strippedLines)
	}
}

func TestCheck_CommentStrippedInStrictMode(t *testing.T) {
	p := &policy.Policy{
		Action:      policy.ActionModify,
		Description: "no eval",
		ContentRules: []policy.ContentRule{
			{Pattern: `\beval\(`, Reason: "eval is disallowed", Mode: policy.ModeStrict},
		},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	content := "// eval(x) in a comment\nconst y = 1;"
	if m := Check(content, "a.js", p); m != nil {
		t.Errorf("strict mode should ignore a trigger inside a line comment, got %+v", m)
	}
}

func countLines(s string) int {
	n := 1
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
