// Package http implements the HTTP surface of the development mock server:
// a small in-memory rendition of the remote REST API the sync engine talks
// to. Authentication, logging and tracing concerns are handled at this layer
// before requests reach the object store.
package http

import (
	"time"

	"github.com/vmartynenko/go-soupsync/internal/logger"
)

// Handler serves the mock API. All object data lives in the embedded
// in-memory store and disappears on restart.
type Handler struct {
	objects *objectStore

	signKey       string
	tokenIssuer   string
	tokenDuration time.Duration
	version       string

	logger *logger.Logger
}

// Settings carries the token and version parameters the handler needs.
type Settings struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

func NewHandler(settings Settings, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		objects:       newObjectStore(),
		signKey:       settings.TokenSignKey,
		tokenIssuer:   settings.TokenIssuer,
		tokenDuration: settings.TokenDuration,
		version:       settings.Version,
		logger:        logger,
	}
}
