package game_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

// orderedBank returns a bank whose draws keep id order; every correct answer
// is the second option.
func orderedBank(t testing.TB, n int) *quiz.Bank {
	t.Helper()
	questions := make([]string, n)
	answers := make([][]string, n)
	correct := make([]string, n)
	for i := range n {
		questions[i] = fmt.Sprintf("Q%d?", i+1)
		answers[i] = []string{"a", "b", "c", "d"}
		correct[i] = "b"
	}
	bank, err := quiz.NewBank(questions, answers, correct, quiz.WithIntN(func(n int) int { return n - 1 }))
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	return bank
}

func choice(i int) *int { return &i }

func TestGameRound(t *testing.T) {
	g, err := game.New(orderedBank(t, 4), 3, game.WithPlayer("ana"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Player() != "ana" || g.Round() != 1 {
		t.Fatalf("unexpected player/round: %q/%d", g.Player(), g.Round())
	}

	view, ok := g.Current()
	if !ok {
		t.Fatal("expected a current question")
	}
	if view.Index != 1 || view.Total != 3 || view.Text != "Q1?" {
		t.Fatalf("unexpected first view: %+v", view)
	}

	out, err := g.Submit(choice(1))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Correct || out.Score != 1 || out.Finished || out.Next == nil || out.Next.Index != 2 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	out, err = g.Submit(choice(0))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if out.Correct || out.Score != 1 {
		t.Fatalf("wrong answer scored: %+v", out)
	}

	out, err = g.Submit(choice(1))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !out.Finished || out.Result == nil {
		t.Fatalf("expected final outcome: %+v", out)
	}
	if got := out.Result.String(); got != "Final score: 2/3" {
		t.Fatalf("summary = %q", got)
	}
	if _, ok := g.Current(); ok {
		t.Fatal("finished game still has a current question")
	}
	if _, err := g.Submit(choice(1)); !errors.Is(err, game.ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}

	answers := g.Answers()
	if len(answers) != 3 || answers[1].Chosen != "a" || answers[1].Correct {
		t.Fatalf("unexpected answers: %+v", answers)
	}
}

func TestGameNoSelection(t *testing.T) {
	g, err := game.New(orderedBank(t, 2), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := g.Submit(nil); !errors.Is(err, quiz.ErrNoSelectionMade) {
		t.Fatalf("expected ErrNoSelectionMade, got %v", err)
	}
	view, _ := g.Current()
	if view.Index != 1 || view.Score != 0 {
		t.Fatalf("no-selection changed state: %+v", view)
	}
	if len(g.Answers()) != 0 {
		t.Fatal("no-selection recorded an answer")
	}
}

func TestGameRestart(t *testing.T) {
	g, err := game.New(orderedBank(t, 2), 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for range 2 {
		if _, err := g.Submit(choice(1)); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if err := g.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	view, ok := g.Current()
	if !ok || view.Index != 1 || view.Score != 0 {
		t.Fatalf("restart did not reset: %+v", view)
	}
	if g.Round() != 2 || len(g.Answers()) != 0 {
		t.Fatalf("round=%d answers=%d", g.Round(), len(g.Answers()))
	}
}

func TestGameConstructionErrors(t *testing.T) {
	empty, err := quiz.NewBank(nil, nil, nil)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if _, err := game.New(empty, 1); !errors.Is(err, game.ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	if _, err := game.New(orderedBank(t, 3), 5); !errors.Is(err, quiz.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestGameClock(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g, err := game.New(orderedBank(t, 1), 1, game.WithClock(func() time.Time { return at }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !g.StartedAt().Equal(at) {
		t.Fatalf("StartedAt = %v", g.StartedAt())
	}
}

func TestFitSize(t *testing.T) {
	bank := orderedBank(t, 3)
	tests := []struct {
		want, got int
	}{
		{10, 3},
		{2, 2},
		{3, 3},
		{0, 3},
		{-1, 3},
	}
	for _, tt := range tests {
		if got := game.FitSize(bank, tt.want); got != tt.got {
			t.Errorf("FitSize(%d) = %d, want %d", tt.want, got, tt.got)
		}
	}
	if got := game.FitSize(nil, 5); got != 0 {
		t.Errorf("FitSize(nil) = %d", got)
	}
}
