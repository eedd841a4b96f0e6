// Package cli wires the veto subcommands onto a cobra root command: one
// command per operation (compile, check-file, check-command, check-content,
// synthesise-hooks, daemon, cache), sharing a single *config.Config resolved
// once in PersistentPreRunE.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/config"
)

// ValidationError marks an exit-code-2 failure: a malformed restriction, an
// unreadable target, or an invalid persisted policy, as opposed to an
// exit-code-1 operational failure (I/O, network, LLM).
type ValidationError struct{ Err error }

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Err: fmt.Errorf(format, args...)}
}

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "veto",
	Short:         "veto enforces natural-language permission rules over file, command, and code-content operations",
	Long:          `veto compiles plain-language restrictions ("don't delete test files", "no lodash") into policies enforced by a per-session daemon, without modifying the agent it's wrapping.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		policyPath, _ := cmd.Flags().GetString("policy")
		cachePath, _ := cmd.Flags().GetString("cache")
		logPath, _ := cmd.Flags().GetString("log")
		packsDir, _ := cmd.Flags().GetString("packs")

		c, err := config.Load(policyPath, cachePath, logPath)
		if err != nil {
			return fmt.Errorf("resolve config: %w", err)
		}
		if packsDir != "" {
			c.PacksDir = packsDir
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("policy", "", "path to the persisted policy store (default ~/.veto/policies.json)")
	rootCmd.PersistentFlags().String("cache", "", "path to the compile cache (default ~/.veto/compile-cache.json)")
	rootCmd.PersistentFlags().String("log", "", "path to the audit log (default ~/.veto/audit.jsonl)")
	rootCmd.PersistentFlags().String("packs", "", "directory of policy packs (default ~/.veto/packs)")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkFileCmd)
	rootCmd.AddCommand(checkCommandCmd)
	rootCmd.AddCommand(checkContentCmd)
	rootCmd.AddCommand(synthesiseHooksCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(cacheCmd)
}

// Execute runs the root command and returns the exit code the caller should
// pass to os.Exit: 0 on success, 2 on a ValidationError, 1 on any other
// error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		var verr *ValidationError
		if errors.As(err, &verr) {
			return 2
		}
		return 1
	}
	return 0
}
