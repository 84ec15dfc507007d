package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
)

var (
	ErrFinished    = errors.New("quiz is finished")
	ErrNotFound    = errors.New("quiz session not found")
	ErrNoQuestions = errors.New("no questions available")
)

// View is what a presentation layer needs to render the current question.
type View struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Score   int      `json:"score"`
}

// Answer records one evaluated submission.
type Answer struct {
	QuestionID int    `json:"question_id"`
	Choice     int    `json:"choice"`
	Chosen     string `json:"chosen"`
	Correct    bool   `json:"correct"`
}

// Outcome is the effect of one submission.
type Outcome struct {
	Correct  bool         `json:"correct"`
	Score    int          `json:"score"`
	Finished bool         `json:"finished"`
	Next     *View        `json:"next,omitempty"`
	Result   *quiz.Result `json:"result,omitempty"`
}

// Game owns one quiz taker's state: the shared bank, the current session,
// its scorer and the question on screen.
type Game struct {
	id      string
	player  string
	bank    *quiz.Bank
	size    int
	round   int
	now     func() time.Time
	session *quiz.Session
	scorer  *quiz.Scorer
	current quiz.Question
	active  bool
	answers []Answer

	startedAt time.Time
}

type Option func(*Game)

func WithPlayer(name string) Option {
	return func(g *Game) { g.player = name }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		if now != nil {
			g.now = now
		}
	}
}

// New starts the first round of a game. It fails with ErrNoQuestions on an
// empty bank and with quiz.ErrInvalidArgument when size does not fit it.
func New(bank *quiz.Bank, size int, opts ...Option) (*Game, error) {
	if bank == nil || bank.Size() == 0 {
		return nil, ErrNoQuestions
	}
	g := &Game{
		id:   uuid.NewString(),
		bank: bank,
		size: size,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

// FitSize caps want at the bank size, so a small bank still yields a full
// draw of everything it holds. A non-positive want means the whole bank.
func FitSize(bank *quiz.Bank, want int) int {
	if bank == nil {
		return 0
	}
	if want <= 0 || want > bank.Size() {
		return bank.Size()
	}
	return want
}

func (g *Game) start() error {
	session, err := quiz.NewSession(g.bank, g.size)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	g.session = session
	g.scorer = quiz.NewScorer()
	g.answers = nil
	g.round++
	g.startedAt = g.now()
	g.advance()
	return nil
}

func (g *Game) advance() {
	g.current, g.active = g.session.Next()
}

func (g *Game) ID() string           { return g.id }
func (g *Game) Player() string       { return g.player }
func (g *Game) Round() int           { return g.round }
func (g *Game) StartedAt() time.Time { return g.startedAt }
func (g *Game) Finished() bool       { return !g.active }

// Current returns the question on screen, or false once the round is over.
func (g *Game) Current() (View, bool) {
	if !g.active {
		return View{}, false
	}
	return g.view(), true
}

func (g *Game) view() View {
	return View{
		Index:   g.session.CurrentIndex(),
		Total:   g.session.Size(),
		Text:    g.current.Text(),
		Options: g.current.Options(),
		Score:   g.scorer.Score(),
	}
}

// Submit evaluates choice against the current question and moves on.
// A nil choice returns quiz.ErrNoSelectionMade and changes nothing.
func (g *Game) Submit(choice *int) (Outcome, error) {
	if !g.active {
		return Outcome{}, ErrFinished
	}
	delta, err := g.scorer.Evaluate(g.current, choice)
	if err != nil {
		return Outcome{}, err
	}

	chosen, _ := g.current.Option(*choice)
	g.answers = append(g.answers, Answer{
		QuestionID: g.current.ID(),
		Choice:     *choice,
		Chosen:     chosen,
		Correct:    delta == 1,
	})

	g.advance()
	out := Outcome{
		Correct:  delta == 1,
		Score:    g.scorer.Score(),
		Finished: !g.active,
	}
	if g.active {
		next := g.view()
		out.Next = &next
	} else {
		result := g.Summary()
		out.Result = &result
	}
	return out, nil
}

// Summary is the score of the current round so far.
func (g *Game) Summary() quiz.Result {
	return quiz.NewResult(g.scorer.Score(), g.session.Size())
}

// Answers returns the submissions of the current round.
func (g *Game) Answers() []Answer {
	out := make([]Answer, len(g.answers))
	copy(out, g.answers)
	return out
}

// Restart discards the current round and draws a fresh one from the same bank.
func (g *Game) Restart() error {
	return g.start()
}
