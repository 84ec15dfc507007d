package play

import (
	"github.com/saulo-duarte/quiz-lambda/internal/auth"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

type PlayContainer struct {
	Handler *Handler
	Service PlayService
}

type Options struct {
	SessionSize   int
	Pacing        Pacing
	SecureCookies bool
}

func NewPlayContainer(bank *quiz.Bank, store *game.Store, tokens *auth.TokenManager, results result.ResultService, opts Options) *PlayContainer {
	service := NewService(bank, opts.SessionSize, store, tokens, results, opts.Pacing)
	handler := NewHandler(service, tokens, opts.SecureCookies)

	return &PlayContainer{
		Handler: handler,
		Service: service,
	}
}
