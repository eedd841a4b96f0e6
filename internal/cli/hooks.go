package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/hooksynth"
)

var hooksAgent string

var synthesiseHooksCmd = &cobra.Command{
	Use:   "synthesise-hooks",
	Short: "derive an agent-neutral hook/rule config from the persisted policy store",
	Long: `synthesise-hooks turns every persisted policy into deny/allow entries
rewritten for one agent integration's glob dialect: claude-code, cursor, or
generic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		agent := hooksynth.Agent(hooksAgent)
		switch agent {
		case hooksynth.AgentClaudeCode, hooksynth.AgentCursor, hooksynth.AgentGeneric:
		default:
			return validationErrorf("synthesise-hooks: unknown --agent %q (want claude-code, cursor, or generic)", hooksAgent)
		}

		policies, err := loadPolicies(cfg.PolicyPath)
		if err != nil {
			return err
		}

		var entries []hooksynth.Entry
		for _, p := range policies {
			entries = append(entries, hooksynth.Synthesise(p, agent)...)
		}

		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	synthesiseHooksCmd.Flags().StringVar(&hooksAgent, "agent", string(hooksynth.AgentGeneric), "target agent integration: claude-code, cursor, or generic")
}
