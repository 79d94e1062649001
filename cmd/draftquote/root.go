// Root command for the draftquote CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/harborline/draftquote/internal/paths"
	"github.com/harborline/draftquote/pkg/engine"
	"github.com/harborline/draftquote/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// engineCfg is the engine configuration assembled from config.yaml.
// configDataDir holds the data_dir value loaded from config.yaml.
// Both are set by PersistentPreRunE so all subcommands can use them.
var (
	engineCfg     types.Config
	configDataDir string
)

var rootCmd = &cobra.Command{
	Use:     "draftquote",
	Short:   "Draftquote manages sea freight quotation drafts",
	Version: engine.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = v.GetString(cfgKeyDataDir)
		engineCfg, err = buildEngineConfig(v)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.draftquote-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(optionCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(cleanupCmd)
}

// resolveDataDir returns the data directory following the precedence chain:
// --data-dir flag > config.yaml data_dir > DRAFTQUOTE_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > DRAFTQUOTE_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
