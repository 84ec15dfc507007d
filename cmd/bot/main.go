package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/container"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/telegram"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load configuration")
	}
	config.InitLogger(settings.Env, settings.LogLevel)
	log := config.Logger

	if err := settings.RequireTelegramToken(); err != nil {
		log.WithError(err).Fatal("Telegram bot is not configured")
	}

	bot, err := tgbotapi.NewBotAPI(settings.TelegramAPIToken)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Telegram")
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands...)); err != nil {
		log.WithError(err).Warn("Failed to set bot commands")
	}
	log.WithField("account", bot.Self.UserName).Info("Authorized on Telegram")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bank, err := container.LoadBank(ctx, settings.Quiz.QuestionsPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load questions")
	}
	_, results, err := container.NewResults(ctx, settings)
	if err != nil {
		log.WithError(err).Fatal("Failed to open results storage")
	}

	store := game.NewStore(settings.Quiz.SessionTTL)
	go store.Janitor(ctx, settings.Quiz.SessionTTL, nil)

	handler := telegram.NewHandler(bot, bank, store, results.Service, telegram.Options{
		SessionSize:      settings.Quiz.SessionSize,
		RevealDelay:      settings.Quiz.RevealDelay,
		RestartDelay:     settings.Quiz.RestartDelay,
		LeaderboardLimit: settings.Leaderboard.Limit,
	})
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("Telegram handler failed")
	}
	bot.StopReceivingUpdates()
	log.Info("Shutdown complete")
}
