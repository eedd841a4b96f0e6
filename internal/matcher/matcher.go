// Package matcher implements the Pattern Matcher: path/glob matching with
// platform normalisation, independent of any Policy shape so the same
// primitives serve the daemon and the content scanner.
package matcher

import (
	"path"
	"strings"

	"github.com/gobwas/glob"

	"github.com/gzhole/veto/internal/policy"
)

// Normalize converts a raw path into the canonical form matching is
// performed against: backslashes become forward slashes, the trailing
// slash is dropped (except for root), '.' segments are dropped, and '..'
// segments collapse the preceding segment. Matching is case-insensitive,
// so the result is also lower-cased.
func Normalize(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.ToLower(p)

	isAbs := strings.HasPrefix(p, "/")
	segments := strings.Split(p, "/")

	var out []string
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, seg)
		}
	}

	joined := strings.Join(out, "/")
	if isAbs {
		joined = "/" + joined
	}
	if joined == "" {
		joined = "/"
	}
	return joined
}

// Basename returns the final path segment of an already-normalised path.
func Basename(normalized string) string {
	return path.Base(normalized)
}

// IsProtected reports whether target matches at least one of p's include
// globs and no exclude glob. An empty Include list protects nothing (such
// policies are command-only or content-only).
func IsProtected(target string, p *policy.Policy) bool {
	if len(p.IncludeGlobs()) == 0 {
		return false
	}

	norm := Normalize(target)
	base := Basename(norm)

	if !matchesAny(p.IncludeGlobs(), norm, base) {
		return false
	}
	if matchesAny(p.ExcludeGlobs(), norm, base) {
		return false
	}
	return true
}

// MatchesFileType reports whether target matches any of globs (full
// normalised path or basename). An empty glob list matches everything —
// used by ContentRule.FileTypes, where an empty list means "applies to
// all files".
func MatchesFileType(target string, globs []glob.Glob) bool {
	if len(globs) == 0 {
		return true
	}
	norm := Normalize(target)
	base := Basename(norm)
	return matchesAny(globs, norm, base)
}

func matchesAny(globs []glob.Glob, full, base string) bool {
	for _, g := range globs {
		if g.Match(full) || g.Match(base) {
			return true
		}
	}
	return false
}
