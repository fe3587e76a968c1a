package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/config"
	"github.com/iliyamo/restaurant-booking/internal/database"
	"github.com/iliyamo/restaurant-booking/internal/handler"
	"github.com/iliyamo/restaurant-booking/internal/kitchen"
	"github.com/iliyamo/restaurant-booking/internal/logger"
	"github.com/iliyamo/restaurant-booking/internal/middleware"
	"github.com/iliyamo/restaurant-booking/internal/queue"
	"github.com/iliyamo/restaurant-booking/internal/repository"
	"github.com/iliyamo/restaurant-booking/internal/router"
	queue_publisher "github.com/iliyamo/restaurant-booking/internal/service"
	"github.com/iliyamo/restaurant-booking/internal/session"
	"github.com/iliyamo/restaurant-booking/internal/utils"
)

const shutdownTimeout = 10 * time.Second

// runServe wires every dependency and serves until SIGINT/SIGTERM.  Redis,
// MySQL and RabbitMQ are optional: without them the service runs with
// rate limiting and caching off, no receipt archive and no events.
func runServe(parent context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient(v)
	if rdb == nil {
		log.Warn("redis unavailable: rate limiting and menu cache disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var archive handler.ReceiptArchive
	if cfg.DB.Enabled() {
		db, err := database.Open(cfg.DB)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		archive = repository.NewReceiptRepo(db)
		log.Info("receipt archive enabled", zap.String("db_host", cfg.DB.Host))
	}

	adminHash := ""
	if cfg.AdminPassword != "" {
		if adminHash, err = utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost); err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
	} else {
		log.Warn("ADMIN_PASSWORD not set: admin console disabled")
	}

	pub := queue_publisher.New(cfg.RabbitURL, log)
	if pub.Enabled() && cfg.ConsumerEnabled {
		c := &queue.Consumer{URL: cfg.RabbitURL, LogDir: cfg.OrderLogDir, Log: log.Named("order-consumer")}
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("order consumer stopped", zap.Error(err))
			}
		}()
	}

	sessions := session.NewRegistry(cfg.SessionTTL, log.Named("sessions"))
	go sessions.Run(ctx, cfg.SweepEvery)

	cat := catalog.Default()
	board := kitchen.NewBoard(kitchen.SeedOrders(cat))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(logger.RequestLogger(log))

	router.RegisterRoutes(e)
	v1 := e.Group("/v1", middleware.NewTokenBucket(config.LoadRateLimitConfig(v), rdb, log))
	router.RegisterPublic(v1,
		handler.NewPublicHandler(cat),
		handler.NewSessionHandler(sessions, cfg.JWTSecret, cfg.SessionTTL, adminHash, log),
		middleware.NewMenuCache(config.LoadCacheConfig(v), rdb, log.Named("menu-cache")),
	)
	router.RegisterGuest(v1, handler.NewGuestHandler(sessions, cat, cfg.TaxPercent, pub, archive, log), cfg.JWTSecret)
	router.RegisterAdmin(v1, handler.NewAdminHandler(board, pub, archive, log), cfg.JWTSecret)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
