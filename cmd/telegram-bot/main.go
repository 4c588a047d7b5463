package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weekly-menu/internal/app"
	"weekly-menu/internal/clipper"
	"weekly-menu/internal/config"
	"weekly-menu/internal/logging"
	"weekly-menu/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		logging.New("info", "telegram-bot").Fatal("failed to load config", "err", err)
	}
	logger := logging.New(cfg.LogLevel, "telegram-bot")
	if err := cfg.ValidateTelegram(); err != nil {
		logger.Fatal("invalid telegram config", "err", err)
	}

	// 2. Open the household state
	ctx := context.Background()
	rt, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open app", "err", err)
	}
	defer rt.Close()

	// 3. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, rt.App, clipper.NewClipper(nil), rt.Metrics, logger)
	if err != nil {
		logger.Fatal("failed to initialize telegram bot", "err", err)
	}

	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)

	// 4. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("telegram bot server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}

	logger.Info("server exiting")
}
