// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Martynenko

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_TOKEN_SIGN_KEY": "jwt_secret",
		"APP_TOKEN_ISSUER":   "test_issuer",
		"APP_TOKEN_DURATION": "1h",
		"APP_VERSION":        "1.2.3",

		"REMOTE_INSTANCE_URL":    "https://api.example.org",
		"REMOTE_API_VERSION":     "61.0",
		"REMOTE_ACCESS_TOKEN":    "00Dxx0000001gPz",
		"REMOTE_REQUEST_TIMEOUT": "30s",

		"SERVER_ADDRESS": "localhost:8181",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_PATH": "/var/data/soupsync.db",

		"WORKERS_SYNC_INTERVAL": "5m",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	assert.Equal(t, "https://api.example.org", cfg.Remote.InstanceURL)
	assert.Equal(t, "61.0", cfg.Remote.APIVersion)
	assert.Equal(t, "00Dxx0000001gPz", cfg.Remote.AccessToken)
	assert.Equal(t, 30*time.Second, cfg.Remote.RequestTimeout)

	assert.Equal(t, "localhost:8181", cfg.Server.HTTPAddress)

	assert.Equal(t, "/var/data/soupsync.db", cfg.Storage.DB.Path)

	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"REMOTE_INSTANCE_URL": "https://api.example.org",
		"SERVER_ADDRESS":      "localhost:8181",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// Remote partially filled
	assert.Equal(t, "https://api.example.org", cfg.Remote.InstanceURL)
	assert.Empty(t, cfg.Remote.APIVersion)
	assert.Empty(t, cfg.Remote.AccessToken)
	assert.Zero(t, cfg.Remote.RequestTimeout)

	assert.Equal(t, "localhost:8181", cfg.Server.HTTPAddress)

	// Others untouched
	assert.Equal(t, App{}, cfg.App)
	assert.Empty(t, cfg.Storage.DB.Path)
	assert.Zero(t, cfg.Workers.SyncInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	// All nested fields are non-pointer values, so "empty" state is
	// represented by zero values.
	assert.Equal(t, "", cfg.JSONFilePath)

	assert.Equal(t, App{}, cfg.App)
	assert.Equal(t, Remote{}, cfg.Remote)
	assert.Equal(t, Storage{}, cfg.Storage)
	assert.Equal(t, Server{}, cfg.Server)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"APP_TOKEN_DURATION": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"REMOTE_REQUEST_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Remote.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_TOKEN_SIGN_KEY",
		"APP_TOKEN_ISSUER",
		"APP_TOKEN_DURATION",
		"APP_VERSION",

		"REMOTE_INSTANCE_URL",
		"REMOTE_API_VERSION",
		"REMOTE_ACCESS_TOKEN",
		"REMOTE_REQUEST_TIMEOUT",

		"SERVER_ADDRESS",

		"STORAGE_DB_PATH",

		"WORKERS_SYNC_INTERVAL",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
