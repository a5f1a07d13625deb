// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder accumulates partial configs from several sources and merges
// them in build. Source order matters: mergo.Merge only fills fields the
// destination has not set yet, so an earlier source wins for every field it
// sets.
type configBuilder struct {
	sources []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{sources: make([]*StructuredConfig, 0, 3)}
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	b.sources = append(b.sources, ParseFlags())
	return b
}

// withJSON loads the JSON config file if any earlier source named one. The
// first source that set JSONFilePath decides which file is read, matching
// the merge precedence.
func (b *configBuilder) withJSON() *configBuilder {
	for _, src := range b.sources {
		if src.JSONFilePath == "" {
			continue
		}

		jsonCfg, err := parseJSON(src.JSONFilePath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}

		b.sources = append(b.sources, jsonCfg)
		return b
	}

	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, src := range b.sources {
		if err := mergo.Merge(config, src); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}
