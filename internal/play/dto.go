package play

import (
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

type StartRequest struct {
	Player string `json:"player"`
}

type StartResponse struct {
	Token          string    `json:"token"`
	SessionID      string    `json:"session_id"`
	Player         string    `json:"player,omitempty"`
	Question       game.View `json:"question"`
	RevealDelayMS  int64     `json:"reveal_delay_ms"`
	RestartDelayMS int64     `json:"restart_delay_ms"`
}

// AnswerRequest carries the chosen option index; a missing or null choice
// means nothing was selected.
type AnswerRequest struct {
	Choice *int `json:"choice"`
}

type AnswerResponse struct {
	game.Outcome
	Message string `json:"message,omitempty"`
}

type SummaryResponse struct {
	quiz.Result
	Round    int           `json:"round"`
	Finished bool          `json:"finished"`
	Message  string        `json:"message"`
	Answers  []game.Answer `json:"answers"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
