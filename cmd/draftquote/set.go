// Set command for the draftquote CLI.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/pkg/engine"
	"github.com/harborline/draftquote/pkg/types"
)

var setCmd = &cobra.Command{
	Use:   "set <draft> <step> <json>",
	Short: "Replace a wizard step's data from a JSON payload",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftKey := args[0]
		stepArg := args[1]
		payload := []byte(args[2])

		step, err := strconv.Atoi(stepArg)
		if err != nil || step < 1 || step > 7 {
			fmt.Fprintf(os.Stderr, "invalid step %q (valid: 1-7)\n", stepArg)
			os.Exit(exitUserError)
		}

		session, backend, err := openDraft(draftKey)
		if err != nil {
			if isNotFound(err) {
				fmt.Fprintf(os.Stderr, "draft %q not found\n", draftKey)
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "set:", err)
			os.Exit(exitSysError)
		}
		defer backend.Detach()
		defer session.Close()

		if err := applyStepJSON(session, step, payload); err != nil {
			fmt.Fprintf(os.Stderr, "parse step %d JSON: %s\n", step, err)
			os.Exit(exitUserError)
		}
		saveDraft(session)

		if flagJSON {
			printJSON(session.Snapshot())
			return nil
		}
		fmt.Printf("draft %s: step %d set, now at step %d\n", draftKey, step, session.CurrentStep())
		return nil
	},
}

// applyStepJSON unmarshals the payload into the step's data type and applies
// it to the session.
func applyStepJSON(session *engine.Session, step int, payload []byte) error {
	switch step {
	case 1:
		var s types.Step1
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep1(s)
	case 2:
		var s types.Step2
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep2(s)
	case 3:
		var s types.Step3
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep3(s)
	case 4:
		var s types.Step4
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep4(s)
	case 5:
		var s types.Step5
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep5(s)
	case 6:
		var s types.Step6
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep6(s)
	case 7:
		var s types.Step7
		if err := json.Unmarshal(payload, &s); err != nil {
			return err
		}
		session.SetStep7(s)
	default:
		return fmt.Errorf("unknown step %d", step)
	}
	return nil
}
