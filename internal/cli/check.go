package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/astengine"
	"github.com/gzhole/veto/internal/daemon"
	"github.com/gzhole/veto/internal/policy"
	"github.com/gzhole/veto/internal/scanner"
)

var checkFileAction string

var checkFileCmd = &cobra.Command{
	Use:   "check-file <target>",
	Short: "evaluate a file action against the persisted policy store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkFileAction == "" {
			return validationErrorf("check-file: --action is required")
		}
		policies, err := loadPolicies(cfg.PolicyPath)
		if err != nil {
			return err
		}
		resp := daemon.Evaluate(policy.CheckRequest{Action: checkFileAction, Target: args[0]}, policies)
		return printCheckResult(resp)
	},
}

var checkCommandCmd = &cobra.Command{
	Use:   "check-command <command>",
	Short: "evaluate a shell command against the persisted policy store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		policies, err := loadPolicies(cfg.PolicyPath)
		if err != nil {
			return err
		}
		resp := daemon.Evaluate(policy.CheckRequest{Command: args[0]}, policies)
		return printCheckResult(resp)
	},
}

var checkContentCmd = &cobra.Command{
	Use:   "check-content <file>",
	Short: "scan a file's content against the persisted policy store's content and AST rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return validationErrorf("check-content: read %s: %w", path, err)
		}

		policies, err := loadPolicies(cfg.PolicyPath)
		if err != nil {
			return err
		}

		engine := astengine.NewEngine()
		for _, p := range policies {
			if len(p.ContentRules) > 0 {
				if m := scanner.Check(string(content), path, p); m != nil {
					return printCheckResult(policy.CheckResponse{Allowed: false, Reason: m.Rule.Reason, Suggest: m.Rule.Suggest})
				}
			}
			if len(p.ASTRules) > 0 {
				res := engine.CheckContentAST(content, path, p)
				if !res.Allowed && res.Match != nil {
					return printCheckResult(policy.CheckResponse{Allowed: false, Reason: res.Match.Rule.Reason, Suggest: res.Match.Rule.Suggest})
				}
			}
		}
		return printCheckResult(policy.CheckResponse{Allowed: true})
	},
}

func init() {
	checkFileCmd.Flags().StringVar(&checkFileAction, "action", "", "the action being attempted: delete, modify, execute, or read")
}

func printCheckResult(resp policy.CheckResponse) error {
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
