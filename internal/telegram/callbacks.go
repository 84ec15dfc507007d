package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

const (
	actionPick   = "pick"
	actionSubmit = "submit"
	noChoice     = "-"
)

var errStale = errors.New("stale button")

// callbackData identifies a button on one question of one round of one
// game, so a press on an old message cannot affect the current question.
type callbackData struct {
	action string
	game   string
	round  int
	index  int
	choice *int
}

func (d callbackData) String() string {
	c := noChoice
	if d.choice != nil {
		c = strconv.Itoa(*d.choice)
	}
	return fmt.Sprintf("%s:%s:%d:%d:%s", d.action, d.game, d.round, d.index, c)
}

func parseCallbackData(s string) (callbackData, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 5 || (parts[0] != actionPick && parts[0] != actionSubmit) || parts[1] == "" {
		return callbackData{}, fmt.Errorf("unknown callback data %q", s)
	}
	round, err := strconv.Atoi(parts[2])
	if err != nil {
		return callbackData{}, fmt.Errorf("callback round: %w", err)
	}
	index, err := strconv.Atoi(parts[3])
	if err != nil {
		return callbackData{}, fmt.Errorf("callback index: %w", err)
	}
	d := callbackData{action: parts[0], game: parts[1], round: round, index: index}
	if parts[4] != noChoice {
		c, err := strconv.Atoi(parts[4])
		if err != nil {
			return callbackData{}, fmt.Errorf("callback choice: %w", err)
		}
		d.choice = &c
	}
	return d, nil
}

// gameTag is the prefix of a game id carried in its buttons. A new /quiz
// replaces the chat's game, so buttons of the old one stop matching.
func gameTag(g *game.Game) string {
	id := strings.ReplaceAll(g.ID(), "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// currentFor returns the question on screen when d was issued for it.
func currentFor(g *game.Game, d callbackData) (game.View, bool) {
	v, ok := g.Current()
	if !ok || gameTag(g) != d.game || g.Round() != d.round || v.Index != d.index {
		return game.View{}, false
	}
	return v, true
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	ctx = config.WithLogFields(ctx, logrus.Fields{"chat_id": chatID})
	log := config.WithContext(ctx)

	data, err := parseCallbackData(cb.Data)
	if err != nil {
		log.WithError(err).Warn("Ignoring callback")
		h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	switch data.action {
	case actionPick:
		h.handlePick(ctx, cb, data)
	case actionSubmit:
		h.handleSubmit(ctx, cb, data)
	}
}

func (h *Handler) handlePick(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	chatID := cb.Message.Chat.ID

	var view game.View
	err := h.store.With(chatKey(chatID), func(g *game.Game) error {
		v, ok := currentFor(g, data)
		if !ok {
			return errStale
		}
		view = v
		return nil
	})
	if err != nil {
		h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, msgStaleButton))
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, answerKeyboard(data.game, data.round, view, data.choice))
	h.send(ctx, edit)
	h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, ""))
}

func (h *Handler) handleSubmit(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) {
	log := config.WithContext(ctx)
	chatID := cb.Message.Chat.ID

	var (
		asked    game.View
		out      game.Outcome
		finished *result.RecordResultDTO
		round    int
	)
	err := h.store.With(chatKey(chatID), func(g *game.Game) error {
		v, ok := currentFor(g, data)
		if !ok {
			return errStale
		}
		o, err := g.Submit(data.choice)
		if err != nil {
			return err
		}
		asked, out, round = v, o, g.Round()
		if o.Finished {
			dto := result.RecordFor(g)
			finished = &dto
		}
		return nil
	})

	switch {
	case errors.Is(err, quiz.ErrNoSelectionMade):
		h.answerCallback(ctx, tgbotapi.NewCallbackWithAlert(cb.ID, msgChooseAnswer))
		return
	case errors.Is(err, errStale), errors.Is(err, game.ErrNotFound):
		h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, msgStaleButton))
		return
	case err != nil:
		log.WithError(err).Warn("Answer rejected")
		h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, msgTryLater))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, answeredText(asked, *data.choice, out.Correct))
	edit.ParseMode = tgbotapi.ModeHTML
	h.send(ctx, edit)
	h.answerCallback(ctx, tgbotapi.NewCallback(cb.ID, ""))

	if !out.Finished {
		h.sendQuestion(ctx, chatID, data.game, round, *out.Next)
		return
	}

	log.WithFields(logrus.Fields{"score": out.Result.Score, "total": out.Result.Total}).Info("Quiz finished")
	h.recordResult(ctx, *finished)
	h.finishRound(ctx, chatID, data.game, round, *out.Result)
}
