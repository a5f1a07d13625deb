package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{
			name:     "empty address",
			addr:     NetAddress{},
			expected: "",
		},
		{
			name:     "localhost with port",
			addr:     NetAddress{Host: "localhost", Port: 8181},
			expected: "localhost:8181",
		},
		{
			name:     "IP address with port",
			addr:     NetAddress{Host: "127.0.0.1", Port: 9090},
			expected: "127.0.0.1:9090",
		},
		{
			name:     "only host no port",
			addr:     NetAddress{Host: "localhost", Port: 0},
			expected: "localhost:0",
		},
		{
			name:     "only port no host",
			addr:     NetAddress{Host: "", Port: 8181},
			expected: ":8181",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.addr.String()
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectError  bool
		errorMsg     string
		expectedAddr NetAddress
	}{
		{
			name:         "valid localhost",
			input:        "localhost:8181",
			expectError:  false,
			expectedAddr: NetAddress{Host: "localhost", Port: 8181},
		},
		{
			name:         "valid IPv4",
			input:        "127.0.0.1:9090",
			expectError:  false,
			expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090},
		},
		{
			name:        "missing colon",
			input:       "localhost8181",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "multiple colons without brackets",
			input:       "host:port:extra",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
		{
			name:        "non-numeric port",
			input:       "localhost:abc",
			expectError: true,
			errorMsg:    "invalid syntax",
		},
		{
			name:        "negative port",
			input:       "localhost:-1",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "zero port",
			input:       "localhost:0",
			expectError: true,
			errorMsg:    "port number is a positive integer",
		},
		{
			name:        "invalid IP address",
			input:       "invalid.host:8181",
			expectError: true,
			errorMsg:    "incorrect IP-address provided",
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
			errorMsg:    "need address in a form `host:port`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := NetAddress{}
			err := addr.Set(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

// TestClientConfig_Defaults verifies that applyDefaults fills the optional
// fields and leaves explicit values alone.
func TestClientConfig_Defaults(t *testing.T) {
	cfg := &ClientConfig{}
	cfg.applyDefaults()
	assert.Equal(t, DefaultAPIVersion, cfg.Remote.APIVersion)
	assert.Equal(t, DefaultRequestTimeout, cfg.Remote.RequestTimeout)
	assert.Equal(t, DefaultSyncInterval, cfg.Workers.SyncInterval)

	cfg = &ClientConfig{Remote: ClientRemote{APIVersion: "58.0"}}
	cfg.applyDefaults()
	assert.Equal(t, "58.0", cfg.Remote.APIVersion)
}

// TestClientConfig_Validate covers the required-field rules of the sync
// client view.
func TestClientConfig_Validate(t *testing.T) {
	cfg := &ClientConfig{
		Remote:  ClientRemote{InstanceURL: "https://api.example.org"},
		Storage: ClientStorage{DB: ClientDB{Path: "soupsync.db"}},
	}
	require.NoError(t, cfg.validate())

	noRemote := &ClientConfig{Storage: ClientStorage{DB: ClientDB{Path: "soupsync.db"}}}
	assert.ErrorIs(t, noRemote.validate(), ErrInvalidRemoteConfigs)

	noStorage := &ClientConfig{Remote: ClientRemote{InstanceURL: "https://api.example.org"}}
	assert.ErrorIs(t, noStorage.validate(), ErrInvalidStorageConfigs)
}
