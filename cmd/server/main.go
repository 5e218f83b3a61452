// Server is the draft relay daemon. It accepts Dota 2 game-state-integration
// pushes, distills them into draft selection and clock events, and fans those
// out to viewer websockets. Shutdown is graceful on SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/dotacast/draft-relay/internal/config"
	"github.com/dotacast/draft-relay/internal/gsi"
	"github.com/dotacast/draft-relay/internal/httpapi"
	"github.com/dotacast/draft-relay/internal/hub"
	"github.com/dotacast/draft-relay/internal/metrics"
	"github.com/dotacast/draft-relay/internal/session"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "draft-relay.toml", "Path to config TOML")
		bind       = pflag.String("bind", "", "HTTP bind address (overrides config)")
	)
	pflag.Parse()

	// .env is optional; it usually carries DRAFT_RELAY_TOKEN.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *bind != "" {
		cfg.Server.Bind = *bind
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	met := metrics.New()
	h := hub.NewHub(ctx, logger, met)
	reg := session.NewRegistry(ctx, h, logger, met)
	gate := gsi.NewTokenGate(cfg.Auth.Token)

	srv := &http.Server{
		Addr:    cfg.Server.Bind,
		Handler: httpapi.SetupRoutes(gate, reg, h, cfg.Server.PublicDir, logger, met),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("bind", cfg.Server.Bind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func newLogger(lc config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if lc.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
