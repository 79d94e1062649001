package types

import (
	"errors"
	"time"
)

// Configuration defaults.
const (
	DefaultMaxOptions     = 3
	DefaultDebounceDelay  = 2 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultCacheRetain    = 10
)

// Config holds engine parameters: the remote store endpoint, autosave
// debounce delay, option cap, and local cache settings.
type Config struct {
	RemoteBaseURL  string        `json:"remote_url" yaml:"remote_url" mapstructure:"remote_url"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout"`
	DebounceDelay  time.Duration `json:"debounce_delay" yaml:"debounce_delay" mapstructure:"debounce_delay"`
	MaxOptions     int           `json:"max_options" yaml:"max_options" mapstructure:"max_options"`
	CacheRetain    int           `json:"cache_retain" yaml:"cache_retain" mapstructure:"cache_retain"`
	Currency       string        `json:"currency" yaml:"currency" mapstructure:"currency"`
	DataDir        string        `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// Config validation errors.
var (
	ErrMaxOptionsInvalid     = errors.New("max options must be positive")
	ErrDebounceInvalid       = errors.New("debounce delay must be positive")
	ErrCacheRetainInvalid    = errors.New("cache retain count must be positive")
	ErrCurrencyEmpty         = errors.New("currency must not be empty")
	ErrRequestTimeoutInvalid = errors.New("request timeout must be positive")
)

// DefaultConfig returns a Config populated with the package defaults.
// RemoteBaseURL is left empty; the engine runs local-only without it.
func DefaultConfig() Config {
	return Config{
		RequestTimeout: DefaultRequestTimeout,
		DebounceDelay:  DefaultDebounceDelay,
		MaxOptions:     DefaultMaxOptions,
		CacheRetain:    DefaultCacheRetain,
		Currency:       DefaultCurrency,
	}
}

// Validate checks that the Config is well-formed, returning a sentinel error
// from this package on the first violation.
func (c Config) Validate() error {
	if c.MaxOptions <= 0 {
		return ErrMaxOptionsInvalid
	}
	if c.DebounceDelay <= 0 {
		return ErrDebounceInvalid
	}
	if c.CacheRetain <= 0 {
		return ErrCacheRetainInvalid
	}
	if c.Currency == "" {
		return ErrCurrencyEmpty
	}
	if c.RequestTimeout <= 0 {
		return ErrRequestTimeoutInvalid
	}
	return nil
}
