package quizbank

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestGetQuiz(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quizzes/7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"title":"Geography","totalMarks":10,"teacherId":11,"assignedGroups":"A,B"}`))
	})

	q, err := c.GetQuiz(context.Background(), 7)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if q.ID != 7 || q.TotalMarks != 10 || q.TeacherID != 11 {
		t.Fatalf("quiz decoded wrong: %+v", q)
	}
}

func TestGetQuestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quizzes/7/questions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"text":"Capital of France?","type":"MULTIPLE_CHOICE","marks":5,
			 "options":[{"id":10,"text":"London","isCorrect":false},{"id":11,"text":"Paris","isCorrect":true}]},
			{"id":2,"text":"The sky is blue.","type":"TRUE_FALSE","marks":2,"correctAnswer":"True"}
		]`))
	})

	qs, err := c.GetQuestions(context.Background(), 7)
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("questions = %d, want 2", len(qs))
	}
	if qs[0].Options[1].Text != "Paris" || !qs[0].Options[1].Correct {
		t.Fatalf("options decoded wrong: %+v", qs[0].Options)
	}
	if qs[1].CorrectAnswer != "True" {
		t.Fatalf("answer key decoded wrong: %+v", qs[1])
	}
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	if _, err := c.GetQuiz(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := c.GetQuestions(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	if _, err := c.GetQuiz(context.Background(), 7); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestUnreachableMapsToUnavailable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1", Timeout: 500 * time.Millisecond})
	if _, err := c.GetQuiz(context.Background(), 7); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}
