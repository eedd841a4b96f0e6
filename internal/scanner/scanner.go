// Package scanner implements the Content Scanner: regex matching over file
// content, with mode-controlled comment/string stripping so line/column
// reports always point at real source locations. Built around a table of
// compiled regexes plus small pure helper functions covering style/lint
// signals (lodash, any-types, console methods, …).
package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gzhole/veto/internal/matcher"
	"github.com/gzhole/veto/internal/policy"
)

// ContentMatch is the first content-rule hit returned by Check.
type ContentMatch struct {
	File   string
	Line   int
	Column int
	Match  string
	Rule   policy.ContentRule
}

// Check scans content against every ContentRule in p, in declared order,
// and returns the first match, or nil if none match.
func Check(content, filePath string, p *policy.Policy) *ContentMatch {
	for i, rule := range p.ContentRules {
		if !matcher.MatchesFileType(filePath, p.FileTypeGlobs(i)) {
			continue
		}

		scanText := content
		if rule.Mode == policy.ModeStrict {
			scanText = Strip(content)
		}

		rx := p.ContentRegexp(i)
		locs := rx.FindAllStringIndex(scanText, -1)
		for _, loc := range locs {
			start, end := loc[0], loc[1]
			if isExcepted(content, start, end, p.ExceptionRegexps(i)) {
				continue
			}
			line, col := lineCol(content, start)
			return &ContentMatch{
				File:   filePath,
				Line:   line,
				Column: col,
				Match:  scanText[start:end],
				Rule:   rule,
			}
		}
	}
	return nil
}

// isExcepted captures a +/-100 byte window around the candidate match in
// the original content and tests every exception regex against it.
func isExcepted(original string, start, end int, exceptions []*regexp.Regexp) bool {
	windowStart := start - 100
	if windowStart < 0 {
		windowStart = 0
	}
	windowEnd := end + 100
	if windowEnd > len(original) {
		windowEnd = len(original)
	}
	window := original[windowStart:windowEnd]

	for _, ex := range exceptions {
		if ex.MatchString(window) {
			return true
		}
	}
	return false
}

// lineCol computes the 1-based line and column of a byte offset in s.
func lineCol(s string, offset int) (int, int) {
	if offset > len(s) {
		offset = len(s)
	}
	line := 1
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if s[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	col := offset - lastNewline
	return line, col
}

// writeBlank emits utf8.RuneLen(r) space bytes in place of r, so the
// stripped text stays exactly as long in bytes as the original — byte
// offsets into one stay valid offsets into the other.
func writeBlank(out *strings.Builder, r rune) {
	n := utf8.RuneLen(r)
	if n < 1 {
		n = 1
	}
	for j := 0; j < n; j++ {
		out.WriteByte(' ')
	}
}

// Strip replaces comment bodies and string-literal bodies with spaces,
// preserving every '\n' and the original byte length of every replaced
// rune, so a byte offset into the stripped text is still a valid offset
// into the original content.
func Strip(content string) string {
	var out strings.Builder
	out.Grow(len(content))

	runes := []rune(content)
	n := len(runes)
	i := 0

	for i < n {
		r := runes[i]

		switch {
		case r == '/' && i+1 < n && runes[i+1] == '/':
			// line comment
			for i < n && runes[i] != '\n' {
				writeBlank(&out, runes[i])
				i++
			}

		case r == '/' && i+1 < n && runes[i+1] == '*':
			out.WriteByte(' ')
			out.WriteByte(' ')
			i += 2
			for i < n && !(runes[i] == '*' && i+1 < n && runes[i+1] == '/') {
				if runes[i] == '\n' {
					out.WriteRune('\n')
				} else {
					writeBlank(&out, runes[i])
				}
				i++
			}
			if i < n {
				out.WriteByte(' ')
				out.WriteByte(' ')
				i += 2
			}

		case r == '"' || r == '\'':
			quote := r
			out.WriteByte(' ')
			i++
			for i < n && runes[i] != quote {
				if runes[i] == '\\' && i+1 < n {
					writeBlank(&out, runes[i])
					writeBlank(&out, runes[i+1])
					i += 2
					continue
				}
				if runes[i] == '\n' {
					out.WriteRune('\n')
				} else {
					writeBlank(&out, runes[i])
				}
				i++
			}
			if i < n {
				out.WriteByte(' ')
				i++
			}

		case r == '`':
			out.WriteByte(' ')
			i++
			templateDepth := 0
			for i < n {
				if runes[i] == '\\' && i+1 < n {
					writeBlank(&out, runes[i])
					writeBlank(&out, runes[i+1])
					i += 2
					continue
				}
				if templateDepth == 0 && runes[i] == '`' {
					break
				}
				if runes[i] == '$' && i+1 < n && runes[i+1] == '{' {
					templateDepth++
					out.WriteRune(runes[i])
					out.WriteRune(runes[i+1])
					i += 2
					continue
				}
				if templateDepth > 0 && runes[i] == '{' {
					templateDepth++
				}
				if templateDepth > 0 && runes[i] == '}' {
					templateDepth--
					out.WriteRune(runes[i])
					i++
					continue
				}
				if templateDepth > 0 {
					// inside ${...} interpolation: leave code intact so
					// nested strings/comments there are still scanned.
					out.WriteRune(runes[i])
					i++
					continue
				}
				if runes[i] == '\n' {
					out.WriteRune('\n')
				} else {
					writeBlank(&out, runes[i])
				}
				i++
			}
			if i < n {
				out.WriteByte(' ')
				i++
			}

		default:
			out.WriteRune(r)
			i++
		}
	}

	return out.String()
}
