// Option commands for the draftquote CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/internal/cache"
	"github.com/harborline/draftquote/internal/options"
	"github.com/harborline/draftquote/pkg/engine"
	"github.com/harborline/draftquote/pkg/types"
)

var (
	flagOptionName        string
	flagOptionDescription string
	flagOptionCreatedBy   string
)

var optionCmd = &cobra.Command{
	Use:   "option",
	Short: "Manage a draft's saved pricing options",
}

var optionAddCmd = &cobra.Command{
	Use:   "add <draft>",
	Short: "Freeze the current pricing into a new option",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "option add")
		defer backend.Detach()
		defer session.Close()

		opt, err := session.AddOption(options.Metadata{
			Name:        flagOptionName,
			Description: flagOptionDescription,
			CreatedBy:   flagOptionCreatedBy,
		})
		if err != nil {
			if isLimitExceeded(err) {
				fmt.Fprintf(os.Stderr, "option cap reached (%d)\n", engineCfg.MaxOptions)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "add option:", err)
			os.Exit(exitSysError)
		}
		saveDraft(session)

		if flagJSON {
			printJSON(opt)
			return nil
		}
		fmt.Printf("option %s: %s (%s %s)\n", opt.OptionID, opt.Name, opt.Totals.FinalTotal, opt.Totals.Currency)
		return nil
	},
}

var optionListCmd = &cobra.Command{
	Use:   "list <draft>",
	Short: "List a draft's saved options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "option list")
		defer backend.Detach()
		defer session.Close()

		opts := session.Options()
		if flagJSON {
			printJSON(opts)
			return nil
		}
		if len(opts) == 0 {
			fmt.Println("no options")
			return nil
		}
		working := session.Snapshot().CurrentWorkingOptionID
		for _, opt := range opts {
			marker := " "
			if opt.OptionID == working {
				marker = "*"
			}
			fmt.Printf("%s %s  %-20s  %s %s  margin %s %s\n",
				marker, opt.OptionID, opt.Name, opt.Totals.FinalTotal, opt.Totals.Currency,
				opt.MarginType, opt.MarginValue)
		}
		return nil
	},
}

var optionMarginCmd = &cobra.Command{
	Use:   "margin <draft> <option-id> <type> <value>",
	Short: "Re-apply a margin to an option's frozen totals",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		marginType := args[2]
		if marginType != types.MarginPercentage && marginType != types.MarginFixed {
			fmt.Fprintf(os.Stderr, "invalid margin type %q (valid: %s, %s)\n",
				marginType, types.MarginPercentage, types.MarginFixed)
			os.Exit(exitUserError)
		}
		marginValue, err := decimal.NewFromString(args[3])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid margin value %q\n", args[3])
			os.Exit(exitUserError)
		}

		session, backend := openDraftOrExit(args[0], "option margin")
		defer backend.Detach()
		defer session.Close()

		opt, err := session.UpdateOptionMargin(args[1], marginType, marginValue)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "option %q not found\n", args[1])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "update margin:", err)
			os.Exit(exitSysError)
		}
		saveDraft(session)

		if flagJSON {
			printJSON(opt)
			return nil
		}
		fmt.Printf("option %s: total %s %s\n", opt.OptionID, opt.Totals.FinalTotal, opt.Totals.Currency)
		return nil
	},
}

var optionDuplicateCmd = &cobra.Command{
	Use:   "duplicate <draft> <option-id>",
	Short: "Clone an option under a new id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "option duplicate")
		defer backend.Detach()
		defer session.Close()

		opt, err := session.DuplicateOption(args[1])
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "option %q not found\n", args[1])
				os.Exit(exitUserError)
			}
			if isLimitExceeded(err) {
				fmt.Fprintf(os.Stderr, "option cap reached (%d)\n", engineCfg.MaxOptions)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "duplicate option:", err)
			os.Exit(exitSysError)
		}
		saveDraft(session)

		if flagJSON {
			printJSON(opt)
			return nil
		}
		fmt.Printf("option %s: %s\n", opt.OptionID, opt.Name)
		return nil
	},
}

var optionDeleteCmd = &cobra.Command{
	Use:   "delete <draft> <option-id>",
	Short: "Remove an option from a draft",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "option delete")
		defer backend.Detach()
		defer session.Close()

		if err := session.DeleteOption(args[1]); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "option %q not found\n", args[1])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "delete option:", err)
			os.Exit(exitSysError)
		}
		saveDraft(session)

		fmt.Println("deleted option:", args[1])
		return nil
	},
}

var optionSelectCmd = &cobra.Command{
	Use:   "select <draft> <option-id>",
	Short: "Mark an option as the one currently being refined",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, backend := openDraftOrExit(args[0], "option select")
		defer backend.Detach()
		defer session.Close()

		if err := session.SetWorkingOption(args[1]); err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "option %q not found\n", args[1])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "select option:", err)
			os.Exit(exitSysError)
		}
		saveDraft(session)

		fmt.Println("working option:", args[1])
		return nil
	},
}

func init() {
	optionAddCmd.Flags().StringVar(&flagOptionName, "name", "", "option name (default: Option N)")
	optionAddCmd.Flags().StringVar(&flagOptionDescription, "description", "", "option description")
	optionAddCmd.Flags().StringVar(&flagOptionCreatedBy, "created-by", "", "author recorded on the option")

	optionCmd.AddCommand(optionAddCmd)
	optionCmd.AddCommand(optionListCmd)
	optionCmd.AddCommand(optionMarginCmd)
	optionCmd.AddCommand(optionDuplicateCmd)
	optionCmd.AddCommand(optionDeleteCmd)
	optionCmd.AddCommand(optionSelectCmd)
}

// openDraftOrExit opens the draft or terminates with the right exit code.
func openDraftOrExit(key, label string) (*engine.Session, *cache.Backend) {
	session, backend, err := openDraft(key)
	if err != nil {
		if isNotFound(err) {
			fmt.Fprintf(os.Stderr, "draft %q not found\n", key)
			os.Exit(exitUserError)
		}
		fmt.Fprintln(os.Stderr, label+":", err)
		os.Exit(exitSysError)
	}
	return session, backend
}
