package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gzhole/veto/internal/policy"
)

// loadPolicies reads the persisted policy store at path and re-compiles
// every entry: Policy.compiled is never serialised, so every policy read
// back from disk must be recompiled before any matcher, scanner, or daemon
// touches it. A missing file is an empty store, not an error.
func loadPolicies(path string) ([]*policy.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read policy store %s: %w", path, err)
	}

	var policies []*policy.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, validationErrorf("policy store %s is not valid JSON: %w", path, err)
	}
	for i, p := range policies {
		if err := p.Compile(); err != nil {
			return nil, validationErrorf("policy store %s entry %d: %w", path, i, err)
		}
	}
	return policies, nil
}

// savePolicies writes policies as the whole store at path, creating the file
// if absent and replacing its previous contents otherwise.
func savePolicies(path string, policies []*policy.Policy) error {
	data, err := json.MarshalIndent(policies, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal policy store: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write policy store %s: %w", path, err)
	}
	return nil
}
