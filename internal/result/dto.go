package result

import (
	"time"

	"github.com/saulo-duarte/quiz-lambda/internal/game"
)

type RecordResultDTO struct {
	SessionID string      `json:"session_id"`
	Round     int         `json:"round"`
	Player    string      `json:"player"`
	Score     int         `json:"score"`
	Total     int         `json:"total"`
	Answers   []AnswerLog `json:"answers"`
}

type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	AchievedAt time.Time `json:"achieved_at"`
}

// RecordFor builds the record of g's current round.
func RecordFor(g *game.Game) RecordResultDTO {
	answers := g.Answers()
	logs := make([]AnswerLog, len(answers))
	for i, a := range answers {
		logs[i] = AnswerLog{
			QuestionID: a.QuestionID,
			Choice:     a.Choice,
			Chosen:     a.Chosen,
			Correct:    a.Correct,
		}
	}
	summary := g.Summary()
	return RecordResultDTO{
		SessionID: g.ID(),
		Round:     g.Round(),
		Player:    g.Player(),
		Score:     summary.Score,
		Total:     summary.Total,
		Answers:   logs,
	}
}
