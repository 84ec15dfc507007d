package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/middlewares"
	"github.com/saulo-duarte/quiz-lambda/internal/play"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
	"github.com/saulo-duarte/quiz-lambda/internal/web"
)

type RouterConfig struct {
	PlayHandler    *play.Handler
	ResultHandler  *result.Handler
	BankSize       int
	AllowedOrigins []string
}

type healthResponse struct {
	Status    string `json:"status"`
	Questions int    `json:"questions"`
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		status := "ok"
		if cfg.BankSize == 0 {
			status = "empty"
		}
		config.JSON(w, http.StatusOK, healthResponse{Status: status, Questions: cfg.BankSize})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/sessions", play.Routes(cfg.PlayHandler))
		r.Mount("/results", result.Routes(cfg.ResultHandler))
	})

	r.Handle("/*", web.Handler())
	return r
}
