package builtin

import "testing"

func TestNormalizePhrase_CollapsesWhitespaceAndCase(t *testing.T) {
	got := NormalizePhrase("  Don't   DELETE Test Files  ")
	want := "don't delete test files"
	if got != want {
		t.Errorf("NormalizePhrase = %q, want %q", got, want)
	}
}

func TestNormalizeASTPhrase_NegationRewrite(t *testing.T) {
	cases := map[string]string{
		"don't use lodash": "no lodash",
		"avoid lodash":      "no lodash",
		"never use lodash":  "no lodash",
		"no lodash":         "no lodash",
	}
	for in, want := range cases {
		if got := NormalizeASTPhrase(in); got != want {
			t.Errorf("NormalizeASTPhrase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeASTPhrase_BareKeywordMapping(t *testing.T) {
	if got := NormalizeASTPhrase("don't use react"); got != "no react class components" {
		t.Errorf("got %q, want %q", got, "no react class components")
	}
}
