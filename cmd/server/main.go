package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbeisheim/szachy-backend/internal/config"
	"github.com/benbeisheim/szachy-backend/internal/controller"
	"github.com/benbeisheim/szachy-backend/internal/logging"
	"github.com/benbeisheim/szachy-backend/internal/middleware"
	"github.com/benbeisheim/szachy-backend/internal/service"
	"github.com/benbeisheim/szachy-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gameStore.Close()

	// Initialize services
	gameManager := service.NewGameManager(gameStore, logger)
	gameManager.StartMatchmaking(ctx, cfg.MatchmakingInterval)
	gameService := service.NewGameService(gameManager)

	app := fiber.New(fiber.Config{DisableStartupMessage: !cfg.Development})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ", "),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))
	controller.RegisterRoutes(app, gameService, cfg.Origins(), logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("redis", cfg.RedisURL != ""))
	return app.Listen(cfg.Addr)
}

// openStore uses Redis when a URL is configured and memory otherwise.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.RedisURL == "" {
		logger.Warn("no redis url configured, games are kept in memory")
		return store.NewMemoryStore(), nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return store.NewRedisStore(pingCtx, cfg.RedisURL, cfg.GameTTL)
}
