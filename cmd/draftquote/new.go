// New command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRequestQuote string
	flagEmail        string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new quotation draft",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "new:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		session := newSession(backend)
		defer session.Close()

		session.SetRequestQuote(flagRequestQuote, flagEmail)
		saveDraft(session)

		snap := session.Snapshot()
		if flagJSON {
			printJSON(snap)
			return nil
		}
		fmt.Println("draft:", snap.Identity())
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&flagRequestQuote, "request-quote", "", "originating quote request id")
	newCmd.Flags().StringVar(&flagEmail, "email", "", "acting user's email")
	_ = newCmd.MarkFlagRequired("request-quote")
}
