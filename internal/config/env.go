// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Which variable feeds
// which field is declared on [StructuredConfig] through `env` and
// `envPrefix` struct tags; unset variables leave the field at its zero
// value so a later source can supply it.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env vars: %w", err)
	}
	return nil
}
