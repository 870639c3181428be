package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"business-analysis/internal/api"
	"business-analysis/internal/api/handlers"
	"business-analysis/internal/api/middleware"
	"business-analysis/internal/config"
	"business-analysis/internal/data"
	"business-analysis/internal/logging"
	"business-analysis/internal/metrics"
	"business-analysis/internal/query"
	"business-analysis/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	ctx := logging.Setup("analysis-api", cfg.Log.Level, os.Stderr)
	logger := zerolog.Ctx(ctx)

	calc, err := metrics.New(cfg.Analysis.PeriodsPerYear)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid analysis config")
	}
	composer := report.NewComposer(calc)
	composer.Parallel = cfg.Analysis.Parallel
	composer.Logger = *logger

	var cache *data.Cache[*query.Result]
	if cfg.Cache.Enabled {
		cache = data.NewCache[*query.Result](cfg.Cache.TTL)
		janitorCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go cache.RunJanitor(janitorCtx, sweepInterval(cfg.Cache.TTL))
		logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("report cache enabled")
	}
	service := query.NewService(composer, cache)

	catalog := data.NewCatalog()
	if cfg.Dataset.Path != "" {
		if err := catalog.LoadFile(handlers.DefaultDataset, cfg.Dataset.Path); err != nil {
			logger.Error().Err(err).Str("path", cfg.Dataset.Path).Msg("failed to load default dataset")
		} else {
			logger.Info().Str("path", cfg.Dataset.Path).Msg("default dataset loaded")
		}
	}
	if cfg.Dataset.Dir != "" {
		n, err := catalog.LoadDir(cfg.Dataset.Dir)
		if err != nil {
			logger.Error().Err(err).Str("dir", cfg.Dataset.Dir).Msg("failed to load datasets")
		}
		logger.Info().Int("count", n).Str("dir", cfg.Dataset.Dir).Msg("datasets loaded")
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	client := data.NewClient()
	client.MaxBytes = cfg.Dataset.MaxFetchBytes
	client.AllowPrivate = cfg.Dataset.AllowPrivateSources
	if client.AllowPrivate {
		logger.Warn().Msg("source_url may point at private addresses")
	}

	router := api.NewRouter(api.Options{
		Service:      service,
		Catalog:      catalog,
		Client:       client,
		Recorder:     middleware.NewRecorder(),
		Logger:       *logger,
		CORSOrigins:  cfg.Server.CORSOrigins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Int("periods_per_year", calc.PeriodsPerYear).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

// sweepInterval keeps expired reports from lingering longer than one TTL.
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return ttl
	}
	return ttl / 2
}
