package play

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/saulo-duarte/quiz-lambda/internal/auth"
	"github.com/saulo-duarte/quiz-lambda/internal/config"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

// NoSelectionMessage is shown when an answer is submitted with nothing chosen.
const NoSelectionMessage = "Please choose an answer!"

type Handler struct {
	service       PlayService
	tokens        *auth.TokenManager
	secureCookies bool
}

func NewHandler(s PlayService, tokens *auth.TokenManager, secureCookies bool) *Handler {
	return &Handler{service: s, tokens: tokens, secureCookies: secureCookies}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Invalid start request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Start(r.Context(), req.Player)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, resp.Token, h.tokens.TTL(), h.secureCookies)
	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	view, err := h.service.Current(r.Context(), claims.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.WithError(err).Warn("Invalid answer request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := h.service.Answer(r.Context(), claims.SessionID, req.Choice)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := AnswerResponse{Outcome: out}
	if out.Result != nil {
		resp.Message = out.Result.String()
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	view, err := h.service.Restart(r.Context(), claims.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), claims.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	config.JSON(w, http.StatusOK, summary)
}

func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	h.service.End(r.Context(), claims.SessionID)
	auth.ClearSessionCookie(w, h.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) claims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, err := auth.GetClaimsFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("Quiz request without session claims")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrNoSelectionMade):
		config.JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: NoSelectionMessage})
	case errors.Is(err, quiz.ErrInvalidChoice),
		errors.Is(err, quiz.ErrInvalidArgument),
		errors.Is(err, quiz.ErrAlreadyAnswered):
		config.JSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, game.ErrNotFound):
		config.JSON(w, http.StatusNotFound, ErrorResponse{Error: "quiz session not found"})
	case errors.Is(err, game.ErrNoQuestions):
		config.JSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "nothing to show"})
	case errors.Is(err, game.ErrFinished):
		config.JSON(w, http.StatusConflict, ErrorResponse{Error: "quiz is finished"})
	default:
		config.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
