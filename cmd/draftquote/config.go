// Config loading for the draftquote CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/harborline/draftquote/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyRemoteURL      = "remote_url"
	cfgKeyRequestTimeout = "request_timeout"
	cfgKeyDebounceDelay  = "debounce_delay"
	cfgKeyMaxOptions     = "max_options"
	cfgKeyCacheRetain    = "cache_retain"
	cfgKeyCurrency       = "currency"
	cfgKeyDataDir        = "data_dir"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Draftquote CLI configuration

# Remote draft store base URL. Drafts stay local-only when unset.
# remote_url: https://quotes.example.com

# Autosave debounce delay.
# debounce_delay: 2s

# Maximum saved options per draft.
# max_options: 3

# Local-only cache entries kept by cleanup.
# cache_retain: 10

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	defaults := types.DefaultConfig()
	v.SetDefault(cfgKeyRequestTimeout, defaults.RequestTimeout)
	v.SetDefault(cfgKeyDebounceDelay, defaults.DebounceDelay)
	v.SetDefault(cfgKeyMaxOptions, defaults.MaxOptions)
	v.SetDefault(cfgKeyCacheRetain, defaults.CacheRetain)
	v.SetDefault(cfgKeyCurrency, defaults.Currency)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// buildEngineConfig maps the loaded configuration onto the engine's Config
// and validates it. DataDir is resolved separately through the flag chain.
func buildEngineConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		RemoteBaseURL:  v.GetString(cfgKeyRemoteURL),
		RequestTimeout: v.GetDuration(cfgKeyRequestTimeout),
		DebounceDelay:  v.GetDuration(cfgKeyDebounceDelay),
		MaxOptions:     v.GetInt(cfgKeyMaxOptions),
		CacheRetain:    v.GetInt(cfgKeyCacheRetain),
		Currency:       v.GetString(cfgKeyCurrency),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
