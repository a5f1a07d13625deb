package main

import (
	"fmt"
	"time"

	"github.com/vmartynenko/go-soupsync/internal/config"
	handlerhttp "github.com/vmartynenko/go-soupsync/internal/handler/http"
	"github.com/vmartynenko/go-soupsync/internal/logger"
	"github.com/vmartynenko/go-soupsync/internal/server"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mockserver")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8181"
	}
	if cfg.App.TokenSignKey == "" {
		log.Warn().Msg("no token sign key configured, falling back to an insecure development key")
		cfg.App.TokenSignKey = "dev-insecure-key"
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "mockserver"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 24 * time.Hour
	}

	handler := handlerhttp.NewHandler(handlerhttp.Settings{
		TokenSignKey:  cfg.App.TokenSignKey,
		TokenIssuer:   cfg.App.TokenIssuer,
		TokenDuration: cfg.App.TokenDuration,
		Version:       cfg.App.Version,
	}, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	log.Info().Str("address", cfg.Server.HTTPAddress).Msg("mock server listening")
	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
