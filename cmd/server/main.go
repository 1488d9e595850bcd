// Command server runs the portal API.
//
// @title                       TCMosque Portal API
// @version                     1.0
// @description                 Accounts, sessions and role-based administration for the mosque portal.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
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

	"github.com/common-nighthawk/go-figure"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/SMASobur/tcmosque/internal/api"
	"github.com/SMASobur/tcmosque/internal/api/handler"
	"github.com/SMASobur/tcmosque/internal/core/service"
	mongostore "github.com/SMASobur/tcmosque/internal/infrastructure/db/mongo"
	redisstore "github.com/SMASobur/tcmosque/internal/infrastructure/db/redis"
	"github.com/SMASobur/tcmosque/internal/pkg/config"
	"github.com/SMASobur/tcmosque/pkg/logger"
)

const (
	appName         = "tcmosque"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if cfg.IsDevelopment() {
		figure.NewFigure(appName, "cybermedium", true).Print()
		fmt.Println()
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: appName,
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongostore.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	readiness := map[string]handler.CheckFunc{
		"mongo": mongostore.HealthCheck(db),
	}

	opts := []service.AuthOption{service.WithHashCost(cfg.Auth.BcryptCost)}
	if rdb := connectRedis(ctx, cfg, log); rdb != nil {
		defer rdb.Close()
		readiness["redis"] = redisstore.HealthCheck(rdb)
		opts = append(opts, service.WithLoginThrottle(
			redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout),
		))
	}

	authService := service.NewAuthService(
		users,
		service.NewTokenManager(cfg.Auth.JWTSecret),
		service.NewRegistrationGate(cfg.Auth.UserCode, cfg.Auth.AdminCode),
		log.With().Str("component", "auth").Logger(),
		opts...,
	)
	adminService := service.NewAdminService(users, log.With().Str("component", "admin").Logger())

	e := api.NewRouter(api.Deps{
		AuthService:  authService,
		AdminService: adminService,
		Readiness:    readiness,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// connectRedis returns nil when throttling is disabled or Redis is unreachable;
// login then runs without a throttle.
func connectRedis(ctx context.Context, cfg *config.Config, log zerolog.Logger) *goredis.Client {
	if !cfg.Auth.LoginThrottle {
		return nil
	}
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttle disabled")
		return nil
	}
	return rdb
}
