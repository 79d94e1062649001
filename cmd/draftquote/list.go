// List command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached drafts, most recent first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		entries, err := backend.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "list drafts:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			printJSON(entries)
			return nil
		}

		if len(entries) == 0 {
			fmt.Println("no drafts")
			return nil
		}
		for _, entry := range entries {
			state := "synced"
			if entry.IsLocalOnly {
				state = "local-only"
			}
			request := ""
			if entry.Payload != nil {
				request = entry.Payload.RequestQuoteID
			}
			fmt.Printf("%s  %-10s  %s  %s\n", entry.Key, state, entry.Timestamp.Format("2006-01-02 15:04:05"), request)
		}
		return nil
	},
}
