package result

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Result is one finished quiz round.
type Result struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID  string         `gorm:"type:text;not null;index" json:"session_id"`
	Round      int            `gorm:"not null;default:1" json:"round"`
	Player     string         `gorm:"type:text;not null;index" json:"player"`
	Score      int            `gorm:"not null;default:0" json:"score"`
	Total      int            `gorm:"not null;default:0" json:"total"`
	Percentage int            `gorm:"not null;default:0" json:"percentage"`
	Answers    datatypes.JSON `gorm:"type:jsonb" json:"answers,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// AnswerLog is the per-question record stored in Result.Answers.
type AnswerLog struct {
	QuestionID int    `json:"question_id"`
	Choice     int    `json:"choice"`
	Chosen     string `json:"chosen"`
	Correct    bool   `json:"correct"`
}
