package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load populates the given config struct from environment variables using
// caarlos0/env struct tags.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
