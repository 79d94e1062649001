// Init command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration and local draft cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		// The cache attach creates the data directory and schema.
		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("config dir:", configDir)
		fmt.Println("data dir:  ", dataDir)
		if engineCfg.RemoteBaseURL == "" {
			fmt.Println("remote:     (local-only)")
		} else {
			fmt.Println("remote:    ", engineCfg.RemoteBaseURL)
		}
		return nil
	},
}
