package play_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulo-duarte/quiz-lambda/internal/auth"
	"github.com/saulo-duarte/quiz-lambda/internal/game"
	"github.com/saulo-duarte/quiz-lambda/internal/play"
	"github.com/saulo-duarte/quiz-lambda/internal/quiz"
	"github.com/saulo-duarte/quiz-lambda/internal/result"
)

const testSecret = "play-handler-test-secret"

type fixture struct {
	routes  http.Handler
	results result.ResultService
	store   *game.Store
}

// newFixture serves a bank whose draws keep file order and whose correct
// answer is always option 1.
func newFixture(t *testing.T, questions int, size int) *fixture {
	t.Helper()
	texts := make([]string, questions)
	answers := make([][]string, questions)
	right := make([]string, questions)
	for i := range questions {
		texts[i] = "Q?"
		answers[i] = []string{"a", "b", "c", "d"}
		right[i] = "b"
	}
	bank, err := quiz.NewBank(texts, answers, right, quiz.WithIntN(func(n int) int { return n - 1 }))
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	tokens, err := auth.NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	store := game.NewStore(time.Hour)
	results := result.NewService(result.NewMemoryRepository())
	c := play.NewPlayContainer(bank, store, tokens, results, play.Options{
		SessionSize: size,
		Pacing:      play.Pacing{RevealDelay: 100 * time.Millisecond, RestartDelay: 2500 * time.Millisecond},
	})
	return &fixture{routes: play.Routes(c.Handler), results: results, store: store}
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.routes.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v", v, err)
	}
	return v
}

func (f *fixture) start(t *testing.T, player string) play.StartResponse {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/", "", play.StartRequest{Player: player})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d: %s", rec.Code, rec.Body.String())
	}
	return decode[play.StartResponse](t, rec)
}

func choice(i int) *int { return &i }

func TestFullRound(t *testing.T) {
	f := newFixture(t, 3, 2)

	rec := f.do(t, http.MethodPost, "/", "", play.StartRequest{Player: "ana"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d", rec.Code)
	}
	if cookies := rec.Result().Cookies(); len(cookies) != 1 || cookies[0].Name != auth.CookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	started := decode[play.StartResponse](t, rec)
	if started.Question.Index != 1 || started.Question.Total != 2 || len(started.Question.Options) != 4 {
		t.Fatalf("unexpected first question: %+v", started.Question)
	}
	if started.RevealDelayMS != 100 || started.RestartDelayMS != 2500 {
		t.Fatalf("unexpected pacing: %+v", started)
	}
	token := started.Token

	t.Run("NoSelection", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/answer", token, play.AnswerRequest{})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := decode[play.ErrorResponse](t, rec); got.Error != play.NoSelectionMessage {
			t.Fatalf("error = %q", got.Error)
		}
		view := decode[game.View](t, f.do(t, http.MethodGet, "/current", token, nil))
		if view.Index != 1 {
			t.Fatalf("question moved to %d", view.Index)
		}
	})

	t.Run("InvalidChoice", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/answer", token, play.AnswerRequest{Choice: choice(4)})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("CorrectThenWrong", func(t *testing.T) {
		first := decode[play.AnswerResponse](t, f.do(t, http.MethodPost, "/answer", token, play.AnswerRequest{Choice: choice(1)}))
		if !first.Correct || first.Score != 1 || first.Finished || first.Next == nil || first.Next.Index != 2 {
			t.Fatalf("unexpected first outcome: %+v", first)
		}

		last := decode[play.AnswerResponse](t, f.do(t, http.MethodPost, "/answer", token, play.AnswerRequest{Choice: choice(0)}))
		if last.Correct || !last.Finished || last.Result == nil {
			t.Fatalf("unexpected last outcome: %+v", last)
		}
		if last.Message != "Final score: 1/2" {
			t.Fatalf("message = %q", last.Message)
		}
	})

	t.Run("FinishedRound", func(t *testing.T) {
		if rec := f.do(t, http.MethodGet, "/current", token, nil); rec.Code != http.StatusConflict {
			t.Fatalf("current status = %d", rec.Code)
		}
		if rec := f.do(t, http.MethodPost, "/answer", token, play.AnswerRequest{Choice: choice(1)}); rec.Code != http.StatusConflict {
			t.Fatalf("answer status = %d", rec.Code)
		}

		summary := decode[play.SummaryResponse](t, f.do(t, http.MethodGet, "/summary", token, nil))
		if !summary.Finished || summary.Score != 1 || summary.Total != 2 || len(summary.Answers) != 2 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
	})

	t.Run("ResultRecorded", func(t *testing.T) {
		entries, err := f.results.Leaderboard(context.Background(), 10)
		if err != nil {
			t.Fatalf("Leaderboard: %v", err)
		}
		if len(entries) != 1 || entries[0].Player != "ana" || entries[0].Score != 1 || entries[0].Percentage != 50 {
			t.Fatalf("unexpected leaderboard: %+v", entries)
		}
	})

	t.Run("Restart", func(t *testing.T) {
		view := decode[game.View](t, f.do(t, http.MethodPost, "/restart", token, nil))
		if view.Index != 1 || view.Score != 0 {
			t.Fatalf("unexpected view after restart: %+v", view)
		}
	})

	t.Run("End", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, "/end", token, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("end status = %d", rec.Code)
		}
		if rec := f.do(t, http.MethodGet, "/current", token, nil); rec.Code != http.StatusNotFound {
			t.Fatalf("current after end status = %d", rec.Code)
		}
	})
}

func TestSessionsAreIndependent(t *testing.T) {
	f := newFixture(t, 4, 2)
	a := f.start(t, "ana")
	b := f.start(t, "bruno")
	if a.SessionID == b.SessionID {
		t.Fatal("sessions share an id")
	}

	f.do(t, http.MethodPost, "/answer", a.Token, play.AnswerRequest{Choice: choice(1)})

	view := decode[game.View](t, f.do(t, http.MethodGet, "/current", b.Token, nil))
	if view.Index != 1 || view.Score != 0 {
		t.Fatalf("second taker affected by first: %+v", view)
	}
	if f.store.Len() != 2 {
		t.Fatalf("store holds %d games", f.store.Len())
	}
}

func TestSmallBankServesEverything(t *testing.T) {
	f := newFixture(t, 3, 10)
	started := f.start(t, "")
	if started.Question.Total != 3 {
		t.Fatalf("Total = %d, want 3", started.Question.Total)
	}
}

func TestEmptyBank(t *testing.T) {
	f := newFixture(t, 0, 10)
	rec := f.do(t, http.MethodPost, "/", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequiresToken(t *testing.T) {
	f := newFixture(t, 2, 2)
	for _, path := range []string{"/current", "/summary"} {
		if rec := f.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d", path, rec.Code)
		}
	}
	if rec := f.do(t, http.MethodPost, "/answer", "garbage", play.AnswerRequest{Choice: choice(0)}); rec.Code != http.StatusUnauthorized {
		t.Errorf("answer status = %d", rec.Code)
	}
}
