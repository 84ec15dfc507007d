package quiz

// OptionsPerQuestion is the number of answer options every question carries.
const OptionsPerQuestion = 4

// Question is one immutable bank entry. Options returns a copy so callers
// cannot reorder or rewrite the stored answers.
type Question struct {
	id            int
	text          string
	options       []string
	correctAnswer string
}

func (q Question) ID() int               { return q.id }
func (q Question) Text() string          { return q.text }
func (q Question) CorrectAnswer() string { return q.correctAnswer }

func (q Question) Options() []string {
	out := make([]string, len(q.options))
	copy(out, q.options)
	return out
}

// Option returns the answer text at index i.
func (q Question) Option(i int) (string, bool) {
	if i < 0 || i >= len(q.options) {
		return "", false
	}
	return q.options[i], true
}

// IsCorrect compares the chosen text with the correct answer verbatim.
func IsCorrect(q Question, chosen string) bool {
	return chosen == q.correctAnswer
}
