package play

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quiz-lambda/internal/auth"
	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

const maxPlayerName = 40

// Pacing is handed to clients so they pause between the last answer, the
// score panel and the next quiz.
type Pacing struct {
	RevealDelay  time.Duration
	RestartDelay time.Duration
}

type PlayService interface {
	Start(ctx context.Context, player string) (*StartResponse, error)
	Current(ctx context.Context, sessionID string) (game.View, error)
	Answer(ctx context.Context, sessionID string, choice *int) (game.Outcome, error)
	Restart(ctx context.Context, sessionID string) (game.View, error)
	Summary(ctx context.Context, sessionID string) (*SummaryResponse, error)
	End(ctx context.Context, sessionID string)
}

type playService struct {
	bank    *quiz.Bank
	size    int
	store   *game.Store
	tokens  *auth.TokenManager
	results result.ResultService
	pacing  Pacing
}

func NewService(bank *quiz.Bank, size int, store *game.Store, tokens *auth.TokenManager, results result.ResultService, pacing Pacing) PlayService {
	return &playService{
		bank:    bank,
		size:    size,
		store:   store,
		tokens:  tokens,
		results: results,
		pacing:  pacing,
	}
}

func (s *playService) Start(ctx context.Context, player string) (*StartResponse, error) {
	log := config.WithContext(ctx)

	player = strings.TrimSpace(player)
	if runes := []rune(player); len(runes) > maxPlayerName {
		player = string(runes[:maxPlayerName])
	}

	g, err := game.New(s.bank, game.FitSize(s.bank, s.size), game.WithPlayer(player))
	if err != nil {
		log.WithError(err).Error("Failed to start quiz")
		return nil, err
	}

	token, err := s.tokens.Generate(g.ID(), player)
	if err != nil {
		log.WithError(err).Error("Failed to issue session token")
		return nil, err
	}
	s.store.Put(g.ID(), g)

	view, _ := g.Current()
	log.WithFields(logrus.Fields{"session_id": g.ID(), "player": player, "size": view.Total}).Info("Quiz started")

	return &StartResponse{
		Token:          token,
		SessionID:      g.ID(),
		Player:         player,
		Question:       view,
		RevealDelayMS:  s.pacing.RevealDelay.Milliseconds(),
		RestartDelayMS: s.pacing.RestartDelay.Milliseconds(),
	}, nil
}

func (s *playService) Current(ctx context.Context, sessionID string) (game.View, error) {
	var view game.View
	err := s.store.With(sessionID, func(g *game.Game) error {
		v, ok := g.Current()
		if !ok {
			return game.ErrFinished
		}
		view = v
		return nil
	})
	return view, err
}

// Answer evaluates choice and, when it completes the round, records the
// result. A failure to record is logged and does not fail the answer.
func (s *playService) Answer(ctx context.Context, sessionID string, choice *int) (game.Outcome, error) {
	log := config.WithContext(ctx)

	var (
		out      game.Outcome
		finished *result.RecordResultDTO
	)
	err := s.store.With(sessionID, func(g *game.Game) error {
		o, err := g.Submit(choice)
		if err != nil {
			return err
		}
		out = o
		if o.Finished {
			dto := result.RecordFor(g)
			finished = &dto
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, quiz.ErrNoSelectionMade) {
			log.WithError(err).Warn("Answer rejected")
		}
		return game.Outcome{}, err
	}

	if finished != nil {
		log.WithFields(logrus.Fields{"score": finished.Score, "total": finished.Total}).Info("Quiz finished")
		if _, err := s.results.Record(ctx, *finished); err != nil {
			log.WithError(err).Error("Failed to record quiz result")
		}
	}
	return out, nil
}

func (s *playService) Restart(ctx context.Context, sessionID string) (game.View, error) {
	var view game.View
	err := s.store.With(sessionID, func(g *game.Game) error {
		if err := g.Restart(); err != nil {
			return err
		}
		view, _ = g.Current()
		config.WithContext(ctx).WithField("round", g.Round()).Info("Quiz restarted")
		return nil
	})
	return view, err
}

func (s *playService) Summary(ctx context.Context, sessionID string) (*SummaryResponse, error) {
	var resp *SummaryResponse
	err := s.store.With(sessionID, func(g *game.Game) error {
		summary := g.Summary()
		resp = &SummaryResponse{
			Result:   summary,
			Round:    g.Round(),
			Finished: g.Finished(),
			Message:  summary.String(),
			Answers:  g.Answers(),
		}
		return nil
	})
	return resp, err
}

func (s *playService) End(ctx context.Context, sessionID string) {
	s.store.Delete(sessionID)
	config.WithContext(ctx).Info("Quiz session ended")
}
