// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; the per-binary views apply their own rules
// ([ClientConfig.validate] for the sync client).
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote.InstanceURL == "" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Storage.DB.Path == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
