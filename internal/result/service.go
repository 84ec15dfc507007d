package result

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/saulo-duarte/quiz-lambda/internal/config"
)

var (
	ErrInvalidResult = errors.New("invalid result")
	ErrPlayerMissing = errors.New("player name required")
)

const anonymousPlayer = "anonymous"

type ResultService interface {
	Record(ctx context.Context, dto RecordResultDTO) (*Result, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	History(ctx context.Context, player string) ([]*Result, error)
}

type resultService struct {
	repo ResultRepository
	now  func() time.Time
}

func NewService(repo ResultRepository) ResultService {
	return &resultService{repo: repo, now: time.Now}
}

func (s *resultService) Record(ctx context.Context, dto RecordResultDTO) (*Result, error) {
	log := config.WithContext(ctx)

	if dto.Total <= 0 || dto.Score < 0 || dto.Score > dto.Total {
		log.WithFields(logrus.Fields{"score": dto.Score, "total": dto.Total}).Warn("Rejecting inconsistent result")
		return nil, ErrInvalidResult
	}

	player := strings.TrimSpace(dto.Player)
	if player == "" {
		player = anonymousPlayer
	}

	answers, err := json.Marshal(dto.Answers)
	if err != nil {
		log.WithError(err).Error("Failed to encode answer log")
		return nil, err
	}

	res := &Result{
		ID:         uuid.New(),
		SessionID:  dto.SessionID,
		Round:      dto.Round,
		Player:     player,
		Score:      dto.Score,
		Total:      dto.Total,
		Percentage: dto.Score * 100 / dto.Total,
		Answers:    datatypes.JSON(answers),
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		log.WithError(err).Error("Failed to store result")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"result_id": res.ID,
		"player":    res.Player,
		"score":     res.Score,
		"total":     res.Total,
	}).Info("Result recorded")
	return res, nil
}

// Leaderboard ranks each player's best result by percentage, then score,
// then who got there first.
func (s *resultService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	log := config.WithContext(ctx)

	best, err := s.repo.ListBest(ctx, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list results")
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(best))
	for i, r := range best {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			Player:     r.Player,
			Score:      r.Score,
			Total:      r.Total,
			Percentage: r.Percentage,
			AchievedAt: r.CreatedAt,
		})
	}
	return entries, nil
}

func (s *resultService) History(ctx context.Context, player string) ([]*Result, error) {
	player = strings.TrimSpace(player)
	if player == "" {
		return nil, ErrPlayerMissing
	}
	results, err := s.repo.ListByPlayer(ctx, player)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list player history")
		return nil, err
	}
	return results, nil
}
