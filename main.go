package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"weather-proxy/api"
	"weather-proxy/config"
	"weather-proxy/datasource"
	"weather-proxy/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run returns once the server has stopped; deferred cleanup finishes before
// main picks the exit status.
func run(args []string) error {
	// Parse command line arguments
	flags := flag.NewFlagSet("weather-proxy", flag.ContinueOnError)
	envFile := flags.String("env", ".env", "Optional .env file with API_KEY and friends")
	addr := flags.String("addr", "", "Listen address (overrides HTTP_ADDR)")
	debug := flags.Bool("debug", false, "Turn on debugging output")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *debug {
		cfg.Debug = true
	}

	err = logging.Init(logging.Options{
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return err
	}
	defer logging.Sync()

	logging.Infow("Configuration loaded",
		"addr", cfg.HTTPAddr,
		"apiKey", cfg.RedactedAPIKey(),
		"upstream", cfg.UpstreamURL,
		"lang", cfg.UpstreamLang,
		"timeout", cfg.UpstreamTimeout,
		"rate", cfg.UpstreamRate,
		"burst", cfg.UpstreamBurst,
		"workers", cfg.UpstreamWorkers,
		"fixture", cfg.FixturePath,
	)

	source, pool, err := buildSource(cfg)
	if err != nil {
		logging.Errorw("Failed to set up report source", "error", err)
		return err
	}
	defer func() {
		logging.Infow("Draining worker pool", "running", pool.Running())
		if err := pool.Close(5 * time.Second); err != nil {
			logging.Warnw("Worker pool did not drain", "error", err)
		}
	}()

	if datasource.NewFixtureSource(cfg.FixturePath).Exists() {
		logging.Warnw("Fixture file present, upstream will not be called", "path", cfg.FixturePath)
	}

	server := api.NewServer(source, cfg.HTTPAddr, logging.Logger(),
		api.WithFetchTimeout(cfg.UpstreamTimeout),
	)

	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Errorw("Server stopped", "error", err)
		return err
	}
	logging.Infow("Shutdown complete")
	return nil
}

// buildSource chains fixture override -> worker pool -> rate limiter -> upstream
func buildSource(cfg config.Config) (datasource.ReportSource, *datasource.PooledSource, error) {
	var live datasource.ReportSource = datasource.NewOpenWeatherMapProvider(cfg.APIKey,
		datasource.WithBaseURL(cfg.UpstreamURL),
		datasource.WithLang(cfg.UpstreamLang),
		datasource.WithTimeout(cfg.UpstreamTimeout),
	)

	// Apply rate limiting if enabled
	if cfg.UpstreamRate > 0 {
		live = datasource.NewRateLimitedSource(live, cfg.UpstreamRate, cfg.UpstreamBurst)
	}

	pool, err := datasource.NewPooledSource(live, cfg.UpstreamWorkers, cfg.UpstreamWorkers*4)
	if err != nil {
		return nil, nil, err
	}

	return datasource.NewFixtureOverride(cfg.FixturePath, pool), pool, nil
}
