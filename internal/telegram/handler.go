// Package telegram plays quiz rounds in Telegram chats.
package telegram

import (
	"context"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Options struct {
	SessionSize      int
	RevealDelay      time.Duration
	RestartDelay     time.Duration
	LeaderboardLimit int
}

type Handler struct {
	bot     Bot
	bank    *quiz.Bank
	store   *game.Store
	results result.ResultService
	opts    Options

	// pending tracks end-of-round timers so Run can wait for them.
	pending sync.WaitGroup
}

func NewHandler(bot Bot, bank *quiz.Bank, store *game.Store, results result.ResultService, opts Options) *Handler {
	return &Handler{
		bot:     bot,
		bank:    bank,
		store:   store,
		results: results,
		opts:    opts,
	}
}

// Commands are registered with Telegram so clients can suggest them.
var Commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Start a quiz"},
	{Command: "quiz", Description: "Start a new quiz"},
	{Command: "score", Description: "Show the current score"},
	{Command: "top", Description: "Show the leaderboard"},
	{Command: "help", Description: "How to play"},
}

func (h *Handler) Run(ctx context.Context) error {
	log := config.WithContext(ctx)
	log.Info("Telegram handler started")
	defer log.Info("Telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.pending.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.pending.Wait()
				return nil
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// Wait blocks until every scheduled end-of-round message has been sent.
func (h *Handler) Wait() { h.pending.Wait() }

func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}
	if update.Message == nil || update.Message.Chat == nil {
		return
	}

	msg := update.Message
	ctx = config.WithLogFields(ctx, logrus.Fields{"chat_id": msg.Chat.ID})
	log := config.WithContext(ctx)
	log.WithField("text", msg.Text).Debug("Update received")

	if !msg.IsCommand() {
		h.send(ctx, newHTMLMessage(msg.Chat.ID, msgUseButtons))
		return
	}

	switch msg.Command() {
	case "start", "quiz":
		h.startQuiz(ctx, msg.Chat.ID, playerName(msg.From))
	case "score":
		h.showScore(ctx, msg.Chat.ID)
	case "top":
		h.showLeaderboard(ctx, msg.Chat.ID)
	case "help":
		h.send(ctx, newHTMLMessage(msg.Chat.ID, msgHelp))
	default:
		h.send(ctx, newHTMLMessage(msg.Chat.ID, msgUnknownCommand))
	}
}

func (h *Handler) startQuiz(ctx context.Context, chatID int64, player string) {
	log := config.WithContext(ctx)

	g, err := game.New(h.bank, game.FitSize(h.bank, h.opts.SessionSize), game.WithPlayer(player))
	if err != nil {
		log.WithError(err).Warn("Failed to start quiz")
		h.send(ctx, newHTMLMessage(chatID, msgNothingToShow))
		return
	}
	h.store.Put(chatKey(chatID), g)

	view, _ := g.Current()
	log.WithFields(logrus.Fields{"player": player, "size": view.Total}).Info("Quiz started")
	h.sendQuestion(ctx, chatID, gameTag(g), g.Round(), view)
}

func (h *Handler) showScore(ctx context.Context, chatID int64) {
	var text string
	err := h.store.With(chatKey(chatID), func(g *game.Game) error {
		text = scoreText(g)
		return nil
	})
	if err != nil {
		text = msgNoQuiz
	}
	h.send(ctx, newHTMLMessage(chatID, text))
}

func (h *Handler) showLeaderboard(ctx context.Context, chatID int64) {
	entries, err := h.results.Leaderboard(ctx, h.opts.LeaderboardLimit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to load leaderboard")
		h.send(ctx, newHTMLMessage(chatID, msgTryLater))
		return
	}
	h.send(ctx, newHTMLMessage(chatID, leaderboardText(entries)))
}

func (h *Handler) sendQuestion(ctx context.Context, chatID int64, tag string, round int, view game.View) {
	msg := newHTMLMessage(chatID, questionText(view))
	msg.ReplyMarkup = answerKeyboard(tag, round, view, nil)
	h.send(ctx, msg)
}

// finishRound shows the final score after the reveal pause and starts the
// next quiz after the restart pause, unless the chat moved on meanwhile.
func (h *Handler) finishRound(ctx context.Context, chatID int64, tag string, round int, summary quiz.Result) {
	h.pending.Add(1)
	go func() {
		defer h.pending.Done()

		if !sleep(ctx, h.opts.RevealDelay) {
			return
		}
		h.send(ctx, newHTMLMessage(chatID, "<b>"+summary.String()+"</b>"))

		if !sleep(ctx, h.opts.RestartDelay) {
			return
		}

		var (
			view    game.View
			next    int
			started bool
		)
		err := h.store.With(chatKey(chatID), func(g *game.Game) error {
			if gameTag(g) != tag || g.Round() != round || !g.Finished() {
				return nil
			}
			if err := g.Restart(); err != nil {
				return err
			}
			view, _ = g.Current()
			next = g.Round()
			started = true
			return nil
		})
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("Failed to start next quiz")
			return
		}
		if started {
			h.sendQuestion(ctx, chatID, tag, next, view)
		}
	}()
}

func (h *Handler) recordResult(ctx context.Context, dto result.RecordResultDTO) {
	if _, err := h.results.Record(ctx, dto); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to record quiz result")
	}
}

func (h *Handler) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to send telegram message")
	}
}

func (h *Handler) answerCallback(ctx context.Context, c tgbotapi.CallbackConfig) {
	if _, err := h.bot.Request(c); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to answer callback")
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func chatKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func playerName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
