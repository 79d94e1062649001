package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(c *Config) {}, nil},
		{"zero max options", func(c *Config) { c.MaxOptions = 0 }, ErrMaxOptionsInvalid},
		{"negative debounce", func(c *Config) { c.DebounceDelay = -time.Second }, ErrDebounceInvalid},
		{"zero cache retain", func(c *Config) { c.CacheRetain = 0 }, ErrCacheRetainInvalid},
		{"empty currency", func(c *Config) { c.Currency = "" }, ErrCurrencyEmpty},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }, ErrRequestTimeoutInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
