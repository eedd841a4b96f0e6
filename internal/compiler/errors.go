package compiler

import (
	"errors"

	"github.com/gzhole/veto/internal/llm"
)

// Kind classifies a compile-time failure into a small closed set so a CLI
// driver can map errors to a stable exit code without string matching.
type Kind string

const (
	KindMissingConfig    Kind = "missing_config"
	KindCompileFailure   Kind = "compile_failure"
	KindTransientRemote  Kind = "transient_remote"
	KindInvalidInput     Kind = "invalid_input"
)

// Error wraps a cascade failure with its Kind.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Classify maps an error returned by Compiler.Compile to a Kind. Unknown
// errors classify as KindCompileFailure, the conservative default — never
// silently allowed through as success.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, ErrEmptyRestriction) {
		return KindInvalidInput
	}
	if errors.Is(err, llm.ErrMissingAPIKey) {
		return KindMissingConfig
	}
	return KindCompileFailure
}
