package astengine

import "testing"

func TestDetectLanguage_KnownExtensions(t *testing.T) {
	cases := map[string]Lang{
		"a.ts":   LangTypeScript,
		"a.tsx":  LangTSX,
		"a.js":   LangJavaScript,
		"a.jsx":  LangJSX,
		"a.py":   LangPython,
		"a.go":   LangGo,
		"a.rs":   LangRust,
		"a.rb":   LangRuby,
		"a.sh":   LangBash,
		"a.H":    LangC, // extension matching is case-insensitive
	}
	for path, want := range cases {
		got, ok := DetectLanguage(path)
		if !ok {
			t.Errorf("DetectLanguage(%q): expected a recognised language", path)
			continue
		}
		if got != want {
			t.Errorf("DetectLanguage(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDetectLanguage_UnknownExtensionSkips(t *testing.T) {
	if _, ok := DetectLanguage("README.md"); ok {
		t.Errorf("expected .md to be outside the recognised closed set")
	}
}
