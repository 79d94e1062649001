// Version command for the draftquote CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/pkg/engine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the draftquote version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("draftquote", engine.Version)
	},
}
