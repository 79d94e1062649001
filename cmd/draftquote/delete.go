// Delete command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <draft>",
	Short: "Remove a draft from the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftKey := args[0]

		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "delete:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		if err := backend.Delete(draftKey); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "draft %q not found\n", draftKey)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "delete draft:", err)
			os.Exit(exitSysError)
		}

		fmt.Println("deleted:", draftKey)
		return nil
	},
}
