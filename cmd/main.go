package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"omr-bot/config"
	telegram "omr-bot/internal/api"
	"omr-bot/internal/container"
	"omr-bot/internal/infrastructure/storage"
	"omr-bot/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is required")
	}

	lg := logger.NewStd(cfg.LogPrefix)

	// Детекторы областей и отметок
	detectors, closer, err := container.NewDetectors(cfg, lg)
	if err != nil {
		log.Fatalf("Failed to init detectors: %v", err)
	}
	defer closer.Close()

	// Создаём хранилище пользователей
	userRepo := storage.NewMemoryUserRepository()

	// Собираем сервисы приложения
	appContainer := container.New(userRepo, detectors, container.Options{
		Thresholds:    cfg.Thresholds,
		DecodeWorkers: cfg.DecodeWorkers,
		TempDir:       cfg.TempDir,
	}, lg)

	// Создаём бота
	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, lg)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("bot is running (backend %s)", cfg.Backend)
	if err := bot.Run(ctx); err != nil {
		lg.Error("bot error: %v", err)
	}
}
