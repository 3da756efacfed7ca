// digest runs the wishlist reminder emailer on its cron schedule until
// signalled. Deployed as its own process so mail sending never competes
// with request handling.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/sharvari/wardrobe-backend/config"
	"github.com/sharvari/wardrobe-backend/internal/digest"
	"github.com/sharvari/wardrobe-backend/internal/email"
	"github.com/sharvari/wardrobe-backend/internal/infrastructure/postgres"
	ctxlog "github.com/sharvari/wardrobe-backend/internal/log"
	"github.com/sharvari/wardrobe-backend/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()

	userRepo := postgres.NewUserRepository(pool)
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	d := digest.New(userRepo, emailSender, logger)
	if err := d.Start(ctx, cfg.DigestCron); err != nil {
		log.Fatalf("digest: %v", err)
	}

	logger.Info("digest stopped")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
