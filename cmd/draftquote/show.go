// Show command for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <draft>",
	Short: "Display a draft with its progress, totals, and options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftKey := args[0]

		session, backend, err := openDraft(draftKey)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "draft %q not found\n", draftKey)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "show:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()
		defer session.Close()

		snap := session.Snapshot()
		if flagJSON {
			printJSON(map[string]any{
				"draft":       snap,
				"currentStep": session.CurrentStep(),
			})
			return nil
		}

		fmt.Printf("Draft:     %s\n", snap.Identity())
		if snap.HasServerIdentity() {
			fmt.Printf("Server ID: %s\n", snap.DraftID)
		}
		fmt.Printf("Request:   %s\n", snap.RequestQuoteID)
		fmt.Printf("Step:      %d of 7\n", session.CurrentStep())
		fmt.Printf("Created:   %s\n", snap.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Updated:   %s\n", snap.UpdatedAt.Format("2006-01-02 15:04:05"))

		if snap.Step1 != nil {
			fmt.Printf("\nCustomer:  %s\n", snap.Step1.Customer.CompanyName)
			fmt.Printf("Route:     %s -> %s\n", snap.Step1.Origin.City, snap.Step1.Destination.City)
		}

		totals := session.Totals()
		fmt.Println("\nTotals:")
		fmt.Printf("  Haulage:     %s %s\n", totals.HaulageTotal, totals.Currency)
		fmt.Printf("  Sea freight: %s %s\n", totals.SeaFreightTotal, totals.Currency)
		fmt.Printf("  Misc:        %s %s\n", totals.MiscTotal, totals.Currency)
		fmt.Printf("  Subtotal:    %s %s\n", totals.SubTotal, totals.Currency)
		fmt.Printf("  Margin:      %s %s\n", totals.MarginAmount, totals.Currency)
		fmt.Printf("  Total:       %s %s\n", totals.FinalTotal, totals.Currency)

		if opts := session.Options(); len(opts) > 0 {
			fmt.Println("\nOptions:")
			for _, opt := range opts {
				marker := " "
				if opt.OptionID == snap.CurrentWorkingOptionID {
					marker = "*"
				}
				fmt.Printf("  %s %s  %s  %s %s\n", marker, opt.OptionID, opt.Name, opt.Totals.FinalTotal, opt.Totals.Currency)
			}
		}
		return nil
	},
}
