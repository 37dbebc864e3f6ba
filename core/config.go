package core

import (
	"fmt"
	"strings"
)

type ValidationConfig struct {
	// DisableCallbackUniqueness turns off the callback-path validator for
	// hosts that enforce the invariant elsewhere. Off by default: remote
	// schemes are validated.
	DisableCallbackUniqueness bool `koanf:"disable_callback_uniqueness" mapstructure:"disable_callback_uniqueness"`
}

type Config struct {
	ServiceName string           `koanf:"service_name" mapstructure:"service_name"`
	Validation  ValidationConfig `koanf:"validation" mapstructure:"validation"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "dynauth",
		Validation:  ValidationConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return nil
}
