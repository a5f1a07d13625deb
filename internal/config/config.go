// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters and
	// the application version.
	App App `envPrefix:"APP_"`

	// Remote holds the connection settings for the upstream REST API the
	// sync engine talks to.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network settings for the bundled mock API server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background sync jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens
	// issued by the mock server. Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Remote holds connection settings for the upstream REST API.
type Remote struct {
	// InstanceURL is the base URL of the remote API instance,
	// e.g. "https://api.example.org".
	// Env: REMOTE_INSTANCE_URL
	InstanceURL string `env:"INSTANCE_URL"`

	// APIVersion is the remote API version segment, e.g. "60.0".
	// Env: REMOTE_API_VERSION
	APIVersion string `env:"API_VERSION"`

	// AccessToken is the bearer token attached to outbound requests.
	// Env: REMOTE_ACCESS_TOKEN
	AccessToken string `env:"ACCESS_TOKEN"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds settings for the local SQLite database backing the soups.
type DB struct {
	// Path is the SQLite database file path, e.g. "soupsync.db".
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`
}

// Server holds network settings for the bundled mock API server.
type Server struct {
	// HTTPAddress is the TCP address on which the mock server listens,
	// in "host:port" format (e.g. "0.0.0.0:8181").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
}

// Workers holds configuration for background sync jobs.
type Workers struct {
	// SyncInterval defines how often the scheduled re-sync runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (an earlier source wins for fields it sets):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
