package result

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/leaderboard", h.Leaderboard)
	r.Get("/players/{player}", h.History)
	return r
}
