package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/veto/internal/compilecache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "inspect or clear the compile cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "empty the compile cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := compilecache.Load(cfg.CachePath)
		n := c.Len()
		c.Clear()
		if err := c.Flush(); err != nil {
			return fmt.Errorf("flush cleared cache: %w", err)
		}
		fmt.Printf("cleared %d cache entries\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
