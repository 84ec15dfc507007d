package quiz

import (
	"fmt"
	"math/rand/v2"
)

// Entry is one question as it appears in a bank source file.
type Entry struct {
	Question      string   `json:"question" yaml:"question"`
	Answers       []string `json:"answers" yaml:"answers"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
}

// Bank owns the full question collection. It is read-only after NewBank
// returns and safe to share between goroutines.
type Bank struct {
	records []Question
	intN    func(n int) int
}

type BankOption func(*Bank)

// WithIntN replaces the random source used by DrawRandom. fn must return a
// value in [0, n).
func WithIntN(fn func(n int) int) BankOption {
	return func(b *Bank) {
		if fn != nil {
			b.intN = fn
		}
	}
}

// NewBank builds a bank from parallel sequences. Record i gets id i+1.
func NewBank(questions []string, answerSets [][]string, correctAnswers []string, opts ...BankOption) (*Bank, error) {
	if len(questions) != len(answerSets) || len(questions) != len(correctAnswers) {
		return nil, fmt.Errorf("%w: %d questions, %d answer sets, %d correct answers",
			ErrInvalidInput, len(questions), len(answerSets), len(correctAnswers))
	}

	records := make([]Question, 0, len(questions))
	for i := range questions {
		answers := answerSets[i]
		if len(answers) != OptionsPerQuestion {
			return nil, fmt.Errorf("%w: question %d has %d answers, want %d",
				ErrInvalidInput, i+1, len(answers), OptionsPerQuestion)
		}

		matches := 0
		for _, a := range answers {
			if a == correctAnswers[i] {
				matches++
			}
		}
		if matches != 1 {
			return nil, fmt.Errorf("%w: question %d correct answer %q matches %d options",
				ErrInvalidInput, i+1, correctAnswers[i], matches)
		}

		options := make([]string, len(answers))
		copy(options, answers)
		records = append(records, Question{
			id:            i + 1,
			text:          questions[i],
			options:       options,
			correctAnswer: correctAnswers[i],
		})
	}

	b := &Bank{records: records, intN: rand.IntN}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// NewBankFromEntries is NewBank for a sequence of triples.
func NewBankFromEntries(entries []Entry, opts ...BankOption) (*Bank, error) {
	questions := make([]string, len(entries))
	answerSets := make([][]string, len(entries))
	correct := make([]string, len(entries))
	for i, e := range entries {
		questions[i] = e.Question
		answerSets[i] = e.Answers
		correct[i] = e.CorrectAnswer
	}
	return NewBank(questions, answerSets, correct, opts...)
}

func (b *Bank) Size() int { return len(b.records) }

// Records returns the bank content in id order.
func (b *Bank) Records() []Question {
	out := make([]Question, len(b.records))
	copy(out, b.records)
	return out
}

// DrawRandom returns count distinct records in random order. The whole index
// set is shuffled with Fisher-Yates on every call, so draws are independent
// of each other.
func (b *Bank) DrawRandom(count int) ([]Question, error) {
	if count < 0 || count > len(b.records) {
		return nil, fmt.Errorf("%w: requested %d of %d questions", ErrInvalidArgument, count, len(b.records))
	}

	indices := make([]int, len(b.records))
	for i := range indices {
		indices[i] = i
	}
	for i := len(indices) - 1; i > 0; i-- {
		j := b.intN(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}

	out := make([]Question, count)
	for i := range out {
		out[i] = b.records[indices[i]]
	}
	return out, nil
}
