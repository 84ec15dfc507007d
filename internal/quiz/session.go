package quiz

// Session is a forward-only pass over a random draw from a Bank. Once
// exhausted it stays exhausted; start a new Session for more questions.
type Session struct {
	selected []Question
	cursor   int
}

func NewSession(bank *Bank, size int) (*Session, error) {
	selected, err := bank.DrawRandom(size)
	if err != nil {
		return nil, err
	}
	return &Session{selected: selected}, nil
}

// Next delivers the next question and advances the cursor. It returns false
// when the session is exhausted and leaves the cursor where it is.
func (s *Session) Next() (Question, bool) {
	if s.cursor >= len(s.selected) {
		return Question{}, false
	}
	q := s.selected[s.cursor]
	s.cursor++
	return q, true
}

// CurrentIndex is the number of questions already delivered.
func (s *Session) CurrentIndex() int { return s.cursor }

func (s *Session) Size() int { return len(s.selected) }

func (s *Session) IsExhausted() bool { return s.cursor == len(s.selected) }
