// Сервер загрузки и сверки данных моделирования производства
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/internal/config"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/logging"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server"
)

func main() {
	configPath := flag.String("config", "", "путь к JSON-файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		log.Fatalf("Ошибка настройки логгера: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatalw("failed to open database", "path", cfg.DatabasePath, "error", err)
	}
	defer db.Close()
	logger.Infow("database ready", "path", cfg.DatabasePath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, db)
	if err := srv.Run(ctx); err != nil {
		logger.Fatalw("server error", "error", err)
	}
	logger.Info("server stopped")
}
