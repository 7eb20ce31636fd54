package main

import (
	"flag"

	"github.com/danmuck/shippoctl/internal/config"
	"github.com/danmuck/shippoctl/internal/logging"
	"github.com/danmuck/shippoctl/internal/mockapi"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	configPath := flag.String("config", "cmd/shippo-mock/config.toml", "mock config path (TOML)")
	flag.Parse()

	cfg, err := config.LoadMockConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load mock config")
	}
	log.Info().Str("path", *configPath).Msg("loaded mock config")

	gin.SetMode(gin.ReleaseMode)
	server, err := mockapi.New(cfg.Server())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create mock api")
	}
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("mock api stopped")
	}
}
