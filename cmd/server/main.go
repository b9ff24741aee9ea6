package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/primestore/backend/internal/config"
	"github.com/primestore/backend/internal/db"
	"github.com/primestore/backend/internal/events"
	"github.com/primestore/backend/internal/hash"
	"github.com/primestore/backend/internal/httpserver"
	"github.com/primestore/backend/internal/logging"
	"github.com/primestore/backend/internal/metrics"
	authmw "github.com/primestore/backend/internal/middleware/auth"
	loggingmw "github.com/primestore/backend/internal/middleware/logging"
	"github.com/primestore/backend/internal/repo"
	"github.com/primestore/backend/internal/search"
	"github.com/primestore/backend/internal/service"
	"github.com/primestore/backend/internal/tokens"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer.Enabled() {
		logger.Info("kafka producer enabled", "brokers", cfg.KafkaBrokers)
	}

	indexer, err := search.NewIndexer(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}
	if indexer.Enabled() {
		logger.Info("search index enabled", "url", cfg.ESURL)
	}

	r := repo.New(gdb)
	issuer := &tokens.Issuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}
	hasher := hash.New(cfg.BcryptCost)

	authSvc := &service.AuthService{Repo: r, Hasher: hasher, Issuer: issuer, Producer: producer}
	productSvc := &service.ProductService{Repo: r, Producer: producer, Indexer: indexer}
	cartSvc := &service.CartService{Repo: r, Producer: producer}

	m := metrics.New()

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(m.Middleware())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: productSvc, Indexer: indexer},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		AuthMW:         authmw.New(issuer, r),
		Metrics:        m,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
