// Package builtin holds the three curated builtin tables — file, command,
// and AST restrictions keyed by normalised phrase — baked directly into
// the binary rather than loaded from disk.
package builtin

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizePhrase lower-cases, trims, and collapses whitespace — the
// canonical key every builtin table is indexed by.
func NormalizePhrase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// negationPrefixes rewrites a leading negation phrase to "no " so that
// "don't use lodash", "avoid lodash", "never use lodash" all normalise to
// the same AST-builtin key.
var negationPrefixes = []string{
	"don't use ", "do not use ", "never use ", "avoid using ",
	"don't ", "do not ", "avoid ", "ban ", "block ", "disallow ",
}

// astLibraryKeywords maps a bare library/keyword mention to its canonical
// AST-builtin key, applied only once the phrase has already been detected
// as negated.
var astLibraryKeywords = map[string]string{
	"lodash":          "no lodash",
	"any type":        "no any types",
	"any types":       "no any types",
	"console.log":     "no console",
	"console":         "no console",
	"react":           "no react class components",
	"class components": "no react class components",
	"eval":            "no eval",
	"moment":          "no moment",
	"innerhtml":       "no innerhtml",
	"hardcoded secret": "no hardcoded secrets",
	"debugger":        "no debugger",
}

// NormalizeASTPhrase applies the AST-builtin-specific normalisation: negate
// prefixes are rewritten to "no ", and if the (now negated) phrase
// otherwise wouldn't hit the table directly, a bare library keyword is
// mapped to its canonical key.
func NormalizeASTPhrase(phrase string) string {
	p := NormalizePhrase(phrase)

	negated := false
	for _, prefix := range negationPrefixes {
		if strings.HasPrefix(p, prefix) {
			p = "no " + strings.TrimPrefix(p, prefix)
			negated = true
			break
		}
	}
	if strings.HasPrefix(p, "no ") {
		negated = true
	}

	if _, ok := ASTPhrases[p]; ok {
		return p
	}

	if negated {
		bare := strings.TrimPrefix(p, "no ")
		bare = strings.TrimPrefix(bare, "use ")
		if key, ok := astLibraryKeywords[bare]; ok {
			return key
		}
	}
	return p
}

// lookupContainment performs the direct-then-containment lookup shared by all three
// tables: an exact match on the normalised phrase, then a containment
// fallback (phrase contains key, or key contains phrase).
func lookupContainment(table map[string]bool, phrase string) (string, bool) {
	if table[phrase] {
		return phrase, true
	}
	var best string
	for key := range table {
		if strings.Contains(phrase, key) || strings.Contains(key, phrase) {
			if len(key) > len(best) {
				best = key
			}
		}
	}
	if best != "" {
		return best, true
	}
	return "", false
}
