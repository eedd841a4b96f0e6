package llm

import (
	"errors"
	"os"
	"testing"
)

func TestNewClient_MissingAPIKeyErrors(t *testing.T) {
	old, had := os.LookupEnv("ANTHROPIC_API_KEY")
	os.Unsetenv("ANTHROPIC_API_KEY")
	defer func() {
		if had {
			os.Setenv("ANTHROPIC_API_KEY", old)
		}
	}()

	if _, err := NewClient(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestIsRetryable_NonAPIErrorIsNotRetryable(t *testing.T) {
	if isRetryable(errors.New("boom")) {
		t.Errorf("a plain error should not be treated as retryable")
	}
}
