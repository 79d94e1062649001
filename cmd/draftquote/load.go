// Load command for the draftquote CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/pkg/types"
)

var loadCmd = &cobra.Command{
	Use:   "load <draft-id>",
	Short: "Fetch a draft from the remote store into the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftID := args[0]

		backend, err := attachCache()
		if err != nil {
			fmt.Fprintln(os.Stderr, "load:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()

		session := newSession(backend)
		defer session.Close()

		if err := session.Load(context.Background(), draftID); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "draft %q not found\n", draftID)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "load draft:", err)
			os.Exit(exitSysError)
		}

		// Refresh the cached copy with what the remote returned.
		snap := session.Snapshot()
		entry := types.CacheEntry{
			Key:         snap.Identity(),
			Timestamp:   time.Now().UTC(),
			Payload:     snap,
			IsLocalOnly: !snap.HasServerIdentity(),
		}
		if snap.HasServerIdentity() {
			id := snap.DraftID
			entry.DraftID = &id
		}
		if err := backend.Put(entry); err != nil {
			fmt.Fprintln(os.Stderr, "cache draft:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			printJSON(snap)
			return nil
		}
		fmt.Println("loaded:", snap.Identity())
		return nil
	},
}
