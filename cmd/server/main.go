// Command server runs the box office HTTP API over a single seating grid.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/theater-seating/internal/config"
	"github.com/iliyamo/theater-seating/internal/handler"
	"github.com/iliyamo/theater-seating/internal/logger"
	"github.com/iliyamo/theater-seating/internal/middleware"
	"github.com/iliyamo/theater-seating/internal/queue"
	"github.com/iliyamo/theater-seating/internal/router"
	"github.com/iliyamo/theater-seating/internal/service"
	"github.com/iliyamo/theater-seating/internal/utils"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for OPERATOR_PASSWORD_HASH and exit")
	flag.Parse()
	if *hashPassword != "" {
		h, err := utils.HashPassword(*hashPassword, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	config.LoadDotEnv()
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var pub service.EventPublisher = service.NopPublisher{}
	if cfg.EventsEnabled {
		pub = service.AMQPPublisher{URL: cfg.AMQPURL}
	}
	office, err := service.NewBoxOffice(cfg.SeatRows, cfg.SeatCols, pub, log)
	if err != nil {
		log.Error("cannot build seating grid", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting and caching disabled")
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb, log)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EventsEnabled && cfg.ConsumeEvents {
		c := &queue.Consumer{URL: cfg.AMQPURL, LogPath: cfg.EventsLogPath, Log: log}
		go func() {
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("reservation consumer stopped", slog.String("error", err.Error()))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("ip", v.RemoteIP),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			log.LogAttrs(c.Request().Context(), slog.LevelInfo, "http request", attrs...)
			return nil
		},
	}))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, log), limiter)
	router.RegisterSeating(e, handler.NewSeatingHandler(office, cache, log), cfg.JWTSecret, limiter, cache.Middleware())

	addr := ":" + cfg.Port
	go func() {
		log.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env),
			slog.Int("rows", cfg.SeatRows), slog.Int("columns", cfg.SeatCols))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.String("error", err.Error()))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
