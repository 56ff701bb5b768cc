// Command orderhub-server starts the orderhub HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"orderhub/internal/config"
	"orderhub/internal/migrate"
	"orderhub/internal/repository/postgres"
	httpserver "orderhub/internal/server/http"
	"orderhub/internal/service"
	"orderhub/internal/token"
	"orderhub/internal/tokenstore"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Server.Addr),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	db, err := postgres.New(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("connect redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	privKey, err := token.LoadPrivateKey(cfg.Auth.PrivateKeyPath)
	if err != nil {
		logger.Fatal("load signing key", zap.Error(err))
	}

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	// Token plumbing
	issuer := token.NewIssuer(privKey, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	verifier := token.NewVerifier(issuer.PublicKey(), cfg.Auth.Issuer)
	refreshStore := tokenstore.NewRedis(redisClient, "refresh:")

	// Services
	roleSvc := service.NewRoleService(userRepo, roleRepo)
	authSvc := service.NewAuthService(userRepo, roleSvc, issuer, refreshStore, cfg.Auth.RefreshTTL)
	orderSvc := service.NewOrderService(productRepo, orderRepo, roleSvc)
	productSvc := service.NewProductService(productRepo, userRepo, roleSvc)

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handler := httpserver.NewHandler(authSvc, roleSvc, orderSvc, productSvc, verifier, logger, cfg.Production())
	handler.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
