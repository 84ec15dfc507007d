package quiz

import "fmt"

// Scorer keeps the running score of one session.
type Scorer struct {
	score    int
	answered map[int]struct{}
}

func NewScorer() *Scorer {
	return &Scorer{answered: make(map[int]struct{})}
}

// Evaluate scores a submission for q. A nil choice means the user picked
// nothing; that and every other error leave the score untouched.
func (s *Scorer) Evaluate(q Question, choice *int) (int, error) {
	if choice == nil {
		return 0, ErrNoSelectionMade
	}
	chosen, ok := q.Option(*choice)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChoice, *choice)
	}
	if _, done := s.answered[q.ID()]; done {
		return 0, fmt.Errorf("%w: question %d", ErrAlreadyAnswered, q.ID())
	}

	s.answered[q.ID()] = struct{}{}
	if !IsCorrect(q, chosen) {
		return 0, nil
	}
	s.score++
	return 1, nil
}

func (s *Scorer) Score() int { return s.score }

// Answered is the number of questions evaluated so far.
func (s *Scorer) Answered() int { return len(s.answered) }

// Result is the final score of a session.
type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

func NewResult(score, total int) Result {
	r := Result{Score: score, Total: total}
	if total > 0 {
		r.Percentage = score * 100 / total
	}
	return r
}

func (r Result) String() string {
	return fmt.Sprintf("Final score: %d/%d", r.Score, r.Total)
}
