package result

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
)

type Handler struct {
	service      ResultService
	defaultLimit int
}

func NewHandler(s ResultService, defaultLimit int) *Handler {
	return &Handler{service: s, defaultLimit: defaultLimit}
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.WithField("limit", raw).Warn("Invalid leaderboard limit")
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, entries)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	player, err := url.PathUnescape(chi.URLParam(r, "player"))
	if err != nil {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}

	results, err := h.service.History(r.Context(), player)
	if err != nil {
		if errors.Is(err, ErrPlayerMissing) {
			http.Error(w, "player required", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, results)
}
