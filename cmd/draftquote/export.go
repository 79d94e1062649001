// Export and import commands for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all cached drafts to a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "export:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		n, err := backend.ExportJSONL(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "export drafts:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("exported %d drafts to %s\n", n, args[0])
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import drafts from a JSONL file into the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "import:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		n, err := backend.ImportJSONL(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "import drafts:", err)
			os.Exit(exitSysError)
		}

		fmt.Printf("imported %d drafts from %s\n", n, args[0])
		return nil
	},
}
