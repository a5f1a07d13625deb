package config

import (
	"fmt"
	"time"
)

// Client-side defaults applied when the merged configuration leaves the
// corresponding field empty.
const (
	DefaultAPIVersion     = "60.0"
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
)

// ClientRemote holds the remote API settings used by the sync client.
type ClientRemote struct {
	// InstanceURL is the base URL of the remote API instance.
	InstanceURL string
	// APIVersion is the remote API version segment.
	APIVersion string
	// AccessToken is the bearer token attached to outbound requests.
	AccessToken string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the sync client.
type ClientDB struct {
	// Path is the SQLite database file path.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// SyncInterval defines how often the scheduled re-sync runs.
	SyncInterval time.Duration
}

// ClientConfig is the sync-client view of the merged configuration.
type ClientConfig struct {
	// Remote contains remote API connection settings.
	Remote ClientRemote
	// Storage contains local storage settings.
	Storage ClientStorage
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the sync client, fills in defaults for the optional ones, and
// validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Remote: ClientRemote{
			InstanceURL:    cfg.Remote.InstanceURL,
			APIVersion:     cfg.Remote.APIVersion,
			AccessToken:    cfg.Remote.AccessToken,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Path: cfg.Storage.DB.Path,
			},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Remote.APIVersion == "" {
		cfg.Remote.APIVersion = DefaultAPIVersion
	}
	if cfg.Remote.RequestTimeout == 0 {
		cfg.Remote.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncInterval == 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}
}
