package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weekly-menu/internal/app"
	"weekly-menu/internal/config"
	"weekly-menu/internal/metrics"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the household App.
type Bot struct {
	api      *tgbotapi.BotAPI
	app      *app.App
	clipper  app.Clipper
	recorder *metrics.Recorder
	cfg      *config.Config
	logger   *log.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, clipper app.Clipper, recorder *metrics.Recorder, logger *log.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized", "account", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", "response", resp.Description)

	return &Bot{
		api:      api,
		app:      application,
		clipper:  clipper,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// RegisterHandlers mounts the webhook, health and metrics endpoints on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", b.recorder.Handler())
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", "err", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.isAllowed(update.CallbackQuery.From) {
			return
		}
		go b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil || !b.isAllowed(update.Message.From) {
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(user *tgbotapi.User) bool {
	if user == nil {
		return false
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if user.ID == id {
			return true
		}
	}
	b.logger.Warn("unauthorized access attempt", "user_id", user.ID, "username", user.UserName)
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	out := b.reply(ctx, msg.From.ID, msg.Text)
	if out.text == "" {
		return
	}
	m := tgbotapi.NewMessage(msg.Chat.ID, out.text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if out.keyboard != nil {
		m.ReplyMarkup = *out.keyboard
	}
	if _, err := b.api.Send(m); err != nil {
		b.logger.Error("failed to send reply", "chat", msg.Chat.ID, "err", err)
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, notice := b.callback(ctx, query.Data)

	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, notice)); err != nil {
		b.logger.Warn("failed to answer callback", "err", err)
	}
	if text == "" || query.Message == nil {
		return
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Error("failed to edit message", "chat", query.Message.Chat.ID, "err", err)
	}
}
