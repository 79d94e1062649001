// Finalize command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFinalizeOptions  []string
	flagFinalizeComments string
)

var finalizeCmd = &cobra.Command{
	Use:   "finalize <draft>",
	Short: "Build the quote generation payload from saved options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "finalize")
		defer backend.Detach()
		defer session.Close()

		payload, err := session.Finalize(flagFinalizeOptions, flagFinalizeComments)
		if err != nil {
			fmt.Fprintln(os.Stderr, "finalize:", err)
			os.Exit(exitUserError)
		}

		printJSON(payload)
		return nil
	},
}

func init() {
	finalizeCmd.Flags().StringSliceVar(&flagFinalizeOptions, "option", nil, "option ids to include (default: all)")
	finalizeCmd.Flags().StringVar(&flagFinalizeComments, "comments", "", "comments attached to the payload")
}
