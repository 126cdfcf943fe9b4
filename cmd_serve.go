package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mortgage-risk/config"
	"mortgage-risk/domain"
	httpLayer "mortgage-risk/http"
	"mortgage-risk/logger"
	"mortgage-risk/metrics"
	"mortgage-risk/repository"
	"mortgage-risk/service"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./configs/config.yaml or ./config.yaml)")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// limiterFor builds the configured rate limiter. The returned cleanup must
// run after the server has stopped.
func limiterFor(cfg *config.Config, log logger.Logger) (httpLayer.Limiter, func()) {
	rl := cfg.RateLimit
	window := config.GetDuration(rl.Window)

	switch {
	case !rl.Enabled:
		return nil, func() {}
	case rl.Backend == config.BackendRedis:
		store := repository.NewRedisCounterStore(repository.NewRedisClient(cfg.Redis), rl.KeyPrefix)

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			// Requests are let through while redis is down.
			log.WithError(err).Warn("redis unreachable at startup", map[string]interface{}{
				"address": cfg.Redis.Address,
			})
		}

		return httpLayer.NewWindowRateLimiter(store, rl.Capacity, window), func() {
			if err := store.Close(); err != nil {
				log.WithError(err).Warn("error closing redis client", nil)
			}
		}
	default:
		limiter := httpLayer.NewRateLimiter(rl.Capacity, window)
		return limiter, limiter.Stop
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log = log.WithFields(map[string]interface{}{"app": cfg.App.Name, "env": cfg.App.Environment})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	limiter, closeLimiter := limiterFor(cfg, log)
	defer closeLimiter()

	svc := service.NewAnalysisService(log, m)
	deps := httpLayer.RouterDeps{
		Handler:        httpLayer.NewAnalysisHandler(svc, log, domain.Mode(cfg.Engine.DefaultMode)),
		Logger:         log,
		Limiter:        limiter,
		LimiterBackend: cfg.RateLimit.Backend,
		Metrics:        m,
	}
	if cfg.Metrics.Enabled {
		deps.MetricsPath = cfg.Metrics.Path
		deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      httpLayer.NewRouter(deps),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", map[string]interface{}{
			"address":          cfg.Server.Address,
			"rateLimitBackend": cfg.RateLimit.Backend,
			"rateLimitEnabled": cfg.RateLimit.Enabled,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server stopped with error", nil)
		return err
	}

	log.Info("server exited", nil)
	return nil
}
