// Save command for the draftquote CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/pkg/types"
)

var saveCmd = &cobra.Command{
	Use:   "save <draft>",
	Short: "Push a cached draft to the remote store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftKey := args[0]

		session, backend, err := openDraft(draftKey)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "draft %q not found\n", draftKey)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "save:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()
		defer session.Close()

		// Unlike the edit commands, an explicit save treats failure as an
		// error instead of a warning.
		if err := session.Save(context.Background()); err != nil {
			var verr *types.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(os.Stderr, "draft incomplete, missing: %s\n", strings.Join(verr.Fields, ", "))
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "save draft:", err)
			os.Exit(exitSysError)
		}

		snap := session.Snapshot()
		if flagJSON {
			printJSON(snap)
			return nil
		}
		fmt.Println("saved:", snap.Identity())
		return nil
	},
}
