package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/compilecache"
	"github.com/gzhole/veto/internal/compiler"
	"github.com/gzhole/veto/internal/llm"
	"github.com/gzhole/veto/internal/policypack"
)

var compileSave bool

var compileCmd = &cobra.Command{
	Use:   "compile <restriction>",
	Short: "compile a natural-language restriction into a policy",
	Long: `compile runs the cascade: builtin tables, then any loaded policy packs,
then the compile cache, then an LLM call, returning the first tier that
produces a policy. Pass --save to append the result to the persisted
policy store.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		restriction := strings.Join(args, " ")

		c, err := newCompiler()
		if err != nil {
			return err
		}

		result, err := c.Compile(context.Background(), restriction)
		if err != nil {
			if errors.Is(err, compiler.ErrEmptyRestriction) {
				return validationErrorf("%w", err)
			}
			return err
		}

		if compileSave {
			policies, err := loadPolicies(cfg.PolicyPath)
			if err != nil {
				return err
			}
			policies = append(policies, &result.Policy)
			if err := savePolicies(cfg.PolicyPath, policies); err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(struct {
			Source string      `json:"source"`
			Policy interface{} `json:"policy"`
		}{Source: string(result.Source), Policy: result.Policy}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	compileCmd.Flags().BoolVar(&compileSave, "save", false, "append the compiled policy to the persisted policy store")
}

// newCompiler assembles the compiler cascade from the resolved config. A
// missing ANTHROPIC_API_KEY degrades the LLM tier to nil rather than
// failing: builtin-only and pack-only compilation must keep working
// without one.
func newCompiler() (*compiler.Compiler, error) {
	tables, _, err := policypack.Load(cfg.PacksDir)
	if err != nil {
		return nil, fmt.Errorf("load policy packs: %w", err)
	}

	client, err := llm.NewClient()
	var llmClient compiler.LLM
	if err == nil {
		llmClient = client
	}

	return &compiler.Compiler{
		Cache: compilecache.Load(cfg.CachePath),
		Packs: &tables,
		LLM:   llmClient,
	}, nil
}
