package play

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Start)

	r.Group(func(r chi.Router) {
		r.Use(h.tokens.Middleware)

		r.Get("/current", h.Current)
		r.Post("/answer", h.Answer)
		r.Post("/restart", h.Restart)
		r.Get("/summary", h.Summary)
		r.Post("/end", h.End)
	})
	return r
}
