package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/deckgen/internal/api"
	"github.com/youruser/deckgen/internal/cards"
	"github.com/youruser/deckgen/internal/config"
	"github.com/youruser/deckgen/internal/deck"
	"github.com/youruser/deckgen/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	catalog, err := cards.LoadCatalogFromDataDir(cfg.Data.Dir)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.String("dir", cfg.Data.Dir), zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.Int("cards", len(catalog.Cards())),
		zap.Strings("sets", catalog.SetSlugs()))

	gen := deck.NewGenerator(catalog, logger)
	gen.MaxAttempts = cfg.Generator.MaxAttempts

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.NewServer(catalog, gen, deck.NewStore(), logger))

	addr := ":" + cfg.Server.Port
	logger.Info("starting server", zap.String("addr", "http://localhost"+addr))
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
