package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/saulo-duarte/quiz-lambda/internal/auth"
	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/play"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
	"github.com/saulo-duarte/quiz-lambda/internal/router"
)

type Container struct {
	Settings *config.Settings
	Bank     *quiz.Bank
	Store    *game.Store
	Tokens   *auth.TokenManager
	DB       *gorm.DB

	PlayContainer   *play.PlayContainer
	ResultContainer *result.ResultContainer
}

// New wires the HTTP application from settings.
func New(ctx context.Context, s *config.Settings) (*Container, error) {
	if err := s.RequireJWTSecret(); err != nil {
		return nil, err
	}

	bank, err := LoadBank(ctx, s.Quiz.QuestionsPath)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(s.Auth.JWTSecret, s.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	db, resultContainer, err := NewResults(ctx, s)
	if err != nil {
		return nil, err
	}

	store := game.NewStore(s.Quiz.SessionTTL)
	playContainer := play.NewPlayContainer(bank, store, tokens, resultContainer.Service, play.Options{
		SessionSize: s.Quiz.SessionSize,
		Pacing: play.Pacing{
			RevealDelay:  s.Quiz.RevealDelay,
			RestartDelay: s.Quiz.RestartDelay,
		},
		SecureCookies: s.IsProduction(),
	})

	return &Container{
		Settings:        s,
		Bank:            bank,
		Store:           store,
		Tokens:          tokens,
		DB:              db,
		PlayContainer:   playContainer,
		ResultContainer: resultContainer,
	}, nil
}

// Handler builds the HTTP router over the container's handlers.
func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		PlayHandler:    c.PlayContainer.Handler,
		ResultHandler:  c.ResultContainer.Handler,
		BankSize:       c.Bank.Size(),
		AllowedOrigins: c.Settings.HTTP.AllowedOrigins,
	})
}

// LoadBank reads the question file at path. An unreadable file yields an
// empty bank so the app can still start and report that there is nothing to
// show; malformed content is an error.
func LoadBank(ctx context.Context, path string) (*quiz.Bank, error) {
	log := config.WithContext(ctx).WithField("path", path)

	bank, err := quiz.LoadFile(path)
	switch {
	case err == nil:
		log.WithField("questions", bank.Size()).Info("Question bank loaded")
		return bank, nil
	case errors.Is(err, quiz.ErrSourceUnavailable):
		log.WithError(err).Warn("Question bank unavailable, starting empty")
		return quiz.NewBank(nil, nil, nil)
	default:
		log.WithError(err).Error("Question bank is invalid")
		return nil, fmt.Errorf("load question bank: %w", err)
	}
}

// NewResults opens the results database when a DSN is configured and falls
// back to in-memory results otherwise.
func NewResults(ctx context.Context, s *config.Settings) (*gorm.DB, *result.ResultContainer, error) {
	if s.DatabaseDSN == "" {
		config.WithContext(ctx).Info("DATABASE_DSN not set, keeping results in memory")
		return nil, result.NewResultContainer(nil, s.Leaderboard.Limit), nil
	}

	db, err := config.Connect(ctx, s.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := db.WithContext(ctx).AutoMigrate(&result.Result{}); err != nil {
		return nil, nil, fmt.Errorf("migrate results: %w", err)
	}
	return db, result.NewResultContainer(db, s.Leaderboard.Limit), nil
}
