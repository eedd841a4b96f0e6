// Package config resolves the on-disk layout under ~/.veto/: the policy
// persistence file, the compile cache, the audit log, and daemon defaults.
package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir    = ".veto"
	DefaultPolicyFile   = "policies.json"
	DefaultCacheFile    = "compile-cache.json"
	DefaultLogFile      = "audit.jsonl"
	DefaultPacksDir     = "packs"
	DefaultPortEnvVar   = "VETO_PORT"
	DefaultActiveEnvVar = "VETO_ACTIVE"
)

// Config resolves every path and default the daemon, compiler, and CLI need.
type Config struct {
	ConfigDir  string
	PolicyPath string
	CachePath  string
	LogPath    string
	PacksDir   string
	Daemon     DaemonConfig
}

// DaemonConfig controls the permission daemon's bind and timeout defaults.
type DaemonConfig struct {
	// Port is a fixed port override; 0 means OS-assigned.
	Port int
	// ShimTimeoutMs bounds how long a shim waits for a daemon response
	// before fail-closing to deny.
	ShimTimeoutMs int
}

// DefaultDaemonConfig returns the daemon's documented defaults.
func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{Port: 0, ShimTimeoutMs: 1000}
}

// Load resolves the config directory (creating it if absent) and every path
// beneath it. An explicit override wins over the default for any path.
func Load(policyPath, cachePath, logPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir: configDir,
		PacksDir:  filepath.Join(configDir, DefaultPacksDir),
		Daemon:    DefaultDaemonConfig(),
	}

	cfg.PolicyPath = firstNonEmpty(policyPath, filepath.Join(configDir, DefaultPolicyFile))
	cfg.CachePath = firstNonEmpty(cachePath, filepath.Join(configDir, DefaultCacheFile))
	cfg.LogPath = firstNonEmpty(logPath, filepath.Join(configDir, DefaultLogFile))

	return cfg, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
