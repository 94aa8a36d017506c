package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yashrajoria/storefront/clients"
	"github.com/yashrajoria/storefront/common/logger"
	"github.com/yashrajoria/storefront/config"
	"github.com/yashrajoria/storefront/controllers"
	"github.com/yashrajoria/storefront/database"
	"github.com/yashrajoria/storefront/repository"
	"github.com/yashrajoria/storefront/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	zlog := logger.Initialize(cfg.Environment)
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable local storage; fall back to memory-only state when redis is
	// unreachable. The stores tolerate either.
	var storage database.LocalStorage
	if client, err := database.NewRedisClient(ctx, cfg.RedisURL); err != nil {
		zlog.Warn("Redis unavailable, state will not survive this session", zap.Error(err))
		storage = database.NewMemoryStorage()
	} else {
		zlog.Info("Connected to Redis")
		storage = database.NewRedisStorage(client, cfg.EventChannel, zlog)
	}

	favoritesRepo := repository.NewFavoritesRepository(storage, zlog)
	themeRepo := repository.NewThemeRepository(storage, zlog)
	credRepo := repository.NewCredentialRepository(storage)

	flag := services.NewPresentationFlag()
	themeService := services.NewThemeService(ctx, themeRepo, storage, flag, zlog)
	themeService.Subscribe(ctx)

	favoritesService := services.NewFavoritesService(favoritesRepo, storage, zlog)
	favoritesService.Subscribe(ctx, func(ids []int) {
		zlog.Info("Favorites changed in another session", zap.Ints("ids", ids))
	})

	authService := services.NewAuthService(credRepo, zlog)
	cartService := services.NewCartService()
	catalogClient := clients.NewHTTPCatalogClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)

	controller := controllers.NewCatalogController(
		catalogClient, authService, cartService, favoritesService, themeService, flag, zlog)

	zlog.Info("Storefront session started",
		zap.String("route", string(controller.Resolve(ctx))),
		zap.String("theme", string(themeService.GetTheme())),
	)

	done := controller.Load(ctx)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		snap := controller.Snapshot(ctx)
		if snap.Error != "" {
			zlog.Error("Catalog load failed", zap.String("error", snap.Error))
		} else {
			zlog.Info("Catalog loaded",
				zap.Int("products", len(snap.Cards)),
				zap.Bool("dark_mode", snap.DarkMode),
			)
		}
		<-stop
	case <-stop:
	}

	zlog.Info("Shutting down gracefully...")
}
