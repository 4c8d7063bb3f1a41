package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wpdmadhuranga/auth-service/config"
	"github.com/wpdmadhuranga/auth-service/internal/email"
	"github.com/wpdmadhuranga/auth-service/internal/health"
	"github.com/wpdmadhuranga/auth-service/internal/infrastructure/mongodb"
	"github.com/wpdmadhuranga/auth-service/internal/infrastructure/postgres"
	ctxlog "github.com/wpdmadhuranga/auth-service/internal/log"
	"github.com/wpdmadhuranga/auth-service/internal/metrics"
	"github.com/wpdmadhuranga/auth-service/internal/password"
	"github.com/wpdmadhuranga/auth-service/internal/reporter"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
	"github.com/wpdmadhuranga/auth-service/internal/token"
	httptransport "github.com/wpdmadhuranga/auth-service/internal/transport/http"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/handler"
	"github.com/wpdmadhuranga/auth-service/internal/transport/http/response"
	"github.com/wpdmadhuranga/auth-service/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	hasher := password.NewHasher(cfg.BcryptCost)

	// Backend is chosen once here; everything above sees only the
	// repository contract.
	var (
		userRepo repository.UserRepository
		pinger   health.Pinger
		closeDB  func()
	)
	switch cfg.StorageEngine {
	case "mongo":
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		repo := mongodb.NewUserRepository(client.Database(cfg.MongoDatabase), hasher)
		if err := repo.EnsureIndexes(ctx); err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		userRepo = repo
		pinger = mongodb.Pinger{Client: client}
		closeDB = func() { _ = client.Disconnect(context.Background()) }
	default:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			stop()
			log.Fatalf("db: %v", err)
		}
		userRepo = postgres.NewUserRepository(pool, hasher)
		pinger = pool
		closeDB = pool.Close
	}
	defer closeDB()

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	resp := response.NewResponder(logger, cfg.Env == "local")

	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, sender, logger)
	userUsecase := usecase.NewUserUsecase(userRepo, hasher)

	metrics.Register()
	checker := health.NewChecker(pinger, cfg.StorageEngine, logger, prometheus.DefaultRegisterer)

	authHandler := handler.NewAuthHandler(authUsecase, resp)
	userHandler := handler.NewUserHandler(userUsecase, resp)
	healthHandler := handler.NewHealthHandler(checker)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, resp,
			authHandler, userHandler, healthHandler,
			tokens, userRepo, cfg.CORSOrigin),
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	rep := reporter.New(userRepo, logger)
	if err := rep.Start(); err != nil {
		stop()
		log.Fatalf("reporter: %v", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "storage", cfg.StorageEngine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	rep.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
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
