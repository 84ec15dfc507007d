package result_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

func record(t *testing.T, s result.ResultService, player string, score, total int) *result.Result {
	t.Helper()
	res, err := s.Record(context.Background(), result.RecordResultDTO{
		SessionID: "s-" + player,
		Round:     1,
		Player:    player,
		Score:     score,
		Total:     total,
	})
	if err != nil {
		t.Fatalf("Record(%s): %v", player, err)
	}
	return res
}

func TestRecord(t *testing.T) {
	s := result.NewService(result.NewMemoryRepository())

	t.Run("StoresPercentageAndAnswers", func(t *testing.T) {
		res, err := s.Record(context.Background(), result.RecordResultDTO{
			SessionID: "abc",
			Round:     2,
			Player:    "  ana ",
			Score:     3,
			Total:     4,
			Answers:   []result.AnswerLog{{QuestionID: 7, Choice: 1, Chosen: "4", Correct: true}},
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if res.Player != "ana" || res.Percentage != 75 {
			t.Fatalf("unexpected result: %+v", res)
		}
		var answers []result.AnswerLog
		if err := json.Unmarshal(res.Answers, &answers); err != nil {
			t.Fatalf("decode answers: %v", err)
		}
		if len(answers) != 1 || answers[0].QuestionID != 7 {
			t.Fatalf("unexpected answers: %+v", answers)
		}
	})

	t.Run("AnonymousPlayer", func(t *testing.T) {
		res := record(t, s, "", 1, 2)
		if res.Player != "anonymous" {
			t.Fatalf("Player = %q", res.Player)
		}
	})

	t.Run("Inconsistent", func(t *testing.T) {
		for _, tc := range []struct{ score, total int }{{5, 4}, {-1, 4}, {0, 0}} {
			_, err := s.Record(context.Background(), result.RecordResultDTO{Player: "x", Score: tc.score, Total: tc.total})
			if !errors.Is(err, result.ErrInvalidResult) {
				t.Errorf("score %d/%d: expected ErrInvalidResult, got %v", tc.score, tc.total, err)
			}
		}
	})
}

func TestLeaderboard(t *testing.T) {
	s := result.NewService(result.NewMemoryRepository())
	record(t, s, "ana", 5, 10)
	record(t, s, "bruno", 9, 10)
	record(t, s, "ana", 8, 10)
	record(t, s, "carla", 8, 10)
	record(t, s, "davi", 4, 5)

	entries, err := s.Leaderboard(context.Background(), 0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	want := []struct {
		player string
		score  int
	}{{"bruno", 9}, {"ana", 8}, {"carla", 8}, {"davi", 4}}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries: %+v", len(entries), entries)
	}
	for i, w := range want {
		if entries[i].Player != w.player || entries[i].Score != w.score || entries[i].Rank != i+1 {
			t.Errorf("entry %d = %+v, want %s with %d", i, entries[i], w.player, w.score)
		}
	}

	top, err := s.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("limit ignored: %d entries", len(top))
	}
}

func TestHistory(t *testing.T) {
	s := result.NewService(result.NewMemoryRepository())
	record(t, s, "ana", 1, 2)
	record(t, s, "bruno", 2, 2)
	record(t, s, "ana", 2, 2)

	history, err := s.History(context.Background(), "ana")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 || history[0].Score != 2 {
		t.Fatalf("unexpected history: %+v", history)
	}

	if _, err := s.History(context.Background(), " "); !errors.Is(err, result.ErrPlayerMissing) {
		t.Fatalf("expected ErrPlayerMissing, got %v", err)
	}
}
