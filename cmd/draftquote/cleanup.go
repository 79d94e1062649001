// Cleanup command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagRetain int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old local-only drafts from the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		retain := flagRetain
		if retain <= 0 {
			retain = engineCfg.CacheRetain
		}

		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cleanup:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		removed, err := backend.Cleanup(retain)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cleanup drafts:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("removed %d drafts, retained up to %d local-only\n", removed, retain)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&flagRetain, "retain", 0, "local-only drafts to keep (default: config cache_retain)")
}
