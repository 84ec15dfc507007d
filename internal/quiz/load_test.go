package quiz_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

func writeFile(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "questions.json", `{
  "questions": [
    {"question": "2+2?", "answers": ["3", "4", "5", "6"], "correctAnswer": "4"},
    {"question": "Capital of France?", "answers": ["Rome", "Paris", "Berlin", "Madrid"], "correctAnswer": "Paris"}
  ]
}`)
	bank, err := quiz.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if bank.Size() != 2 {
		t.Fatalf("Size = %d, want 2", bank.Size())
	}
	second := bank.Records()[1]
	if second.ID() != 2 || second.CorrectAnswer() != "Paris" {
		t.Fatalf("unexpected record: id=%d correct=%q", second.ID(), second.CorrectAnswer())
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "questions.yml", `questions:
  - question: "2+2?"
    answers: ["3", "4", "5", "6"]
    correctAnswer: "4"
`)
	bank, err := quiz.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if bank.Size() != 1 || bank.Records()[0].Text() != "2+2?" {
		t.Fatalf("unexpected bank: %+v", bank.Records())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := quiz.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, quiz.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestLoadFileUnknownField(t *testing.T) {
	path := writeFile(t, "questions.json", `{"questions": [], "extra": true}`)
	_, err := quiz.LoadFile(path)
	if !errors.Is(err, quiz.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoadFileValidation(t *testing.T) {
	path := writeFile(t, "questions.yaml", `questions:
  - question: ""
    answers: ["a", "b", "c"]
    correctAnswer: "z"
  - question: "ok?"
    answers: ["a", "b", "c", "d"]
    correctAnswer: "d"
`)
	_, err := quiz.LoadFile(path)
	if !errors.Is(err, quiz.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	var validationErr *quiz.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(validationErr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", validationErr.Issues)
	}
}
