package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/deepanshusingla076/quiz-master/internal/api/http"
	"github.com/deepanshusingla076/quiz-master/internal/attempt"
	auth "github.com/deepanshusingla076/quiz-master/internal/auth/middleware"
	"github.com/deepanshusingla076/quiz-master/internal/db"
	"github.com/deepanshusingla076/quiz-master/internal/grading"
	"github.com/deepanshusingla076/quiz-master/internal/leaderboard"
	"github.com/deepanshusingla076/quiz-master/internal/quizbank"
	"github.com/deepanshusingla076/quiz-master/internal/rbac"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	// question bank stub: quiz 7 owned by teacher 11
	bank := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/quizzes/7":
			_, _ = w.Write([]byte(`{"id":7,"title":"Geography","totalMarks":7,"teacherId":11}`))
		case "/quizzes/7/questions":
			_, _ = w.Write([]byte(`[
				{"id":1,"type":"MULTIPLE_CHOICE","marks":5,
				 "options":[{"text":"London"},{"text":"Paris","isCorrect":true}]},
				{"id":2,"type":"TRUE_FALSE","marks":2,"correctAnswer":"True"}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(bank.Close)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dbh, err := db.Open(context.Background(),
		db.DriverSQLite,
		fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", name))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	t.Cleanup(func() { dbh.Close() })

	store := attempt.NewSQLStore(dbh, "sqlite")
	quizzes := quizbank.New(quizbank.Config{BaseURL: bank.URL})
	svc := attempt.NewService(store, quizzes, grading.NewDefaultGrader(), leaderboard.NopNotifier{})
	authSvc := auth.NewAuthService("test-secret")

	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(auth.IdentityExtractor(authSvc, false))
		pr.With(rbac.Require("attempt:start")).
			Post("/attempts/start/{quizId}", api.StartAttemptHandler(svc))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/submit", api.SubmitAttemptHandler(svc))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/attempts/student", api.ListStudentAttemptsHandler(svc))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/attempts/student/{quizId}/answers", api.StudentAnswersHandler(svc))
		pr.With(rbac.Require("attempt:view-all")).
			Get("/attempts/quiz/{quizId}", api.ListQuizAttemptsHandler(svc))
		pr.With(rbac.Require("attempt:view-all")).
			Get("/attempts/quiz/{quizId}/group/{groupSection}", api.ListQuizAttemptsHandler(svc))
		pr.With(rbac.Require("results:publish")).
			Post("/results/publish/{quizId}", api.PublishResultsHandler(svc, true))
		pr.With(rbac.Require("results:publish")).
			Post("/results/unpublish/{quizId}", api.PublishResultsHandler(svc, false))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doReq(t *testing.T, srv *httptest.Server, method, path string, body string, userID, role string) *http.Response {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(auth.HeaderUserID, userID)
	req.Header.Set(auth.HeaderUserRole, role)
	req.Header.Set(auth.HeaderEmail, "u@test")
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func decodeAttempt(t *testing.T, res *http.Response) attempt.Attempt {
	t.Helper()
	defer res.Body.Close()
	var a attempt.Attempt
	if err := json.NewDecoder(res.Body).Decode(&a); err != nil {
		t.Fatalf("decode attempt: %v", err)
	}
	return a
}

func TestAttemptLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	// start
	res := doReq(t, srv, "POST", "/attempts/start/7?studentName=Sam&groupSection=A", "", "3", "STUDENT")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("start status = %d", res.StatusCode)
	}
	a := decodeAttempt(t, res)
	if a.Status != attempt.StatusInProgress || a.TotalMarks != 7 {
		t.Fatalf("started attempt wrong: %+v", a)
	}

	// duplicate start conflicts
	res = doReq(t, srv, "POST", "/attempts/start/7?studentName=Sam", "", "3", "STUDENT")
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate start status = %d, want 409", res.StatusCode)
	}
	res.Body.Close()

	// submit
	body := `{"quizId":7,"answers":[{"questionId":1,"answer":"Paris"},{"questionId":2,"answer":"false"}],"timeTakenMinutes":5}`
	res = doReq(t, srv, "POST", "/attempts/submit", body, "3", "STUDENT")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("submit status = %d", res.StatusCode)
	}
	a = decodeAttempt(t, res)
	if a.ObtainedMarks != 5 || a.Status != attempt.StatusSubmitted {
		t.Fatalf("submitted attempt wrong: %+v", a)
	}

	// hidden until published
	res = doReq(t, srv, "GET", "/attempts/student?visibleOnly=true", "", "3", "STUDENT")
	defer res.Body.Close()
	var list []attempt.Attempt
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("results visible before publish: %+v", list)
	}

	// answer breakdown gated the same way
	res = doReq(t, srv, "GET", "/attempts/student/7/answers", "", "3", "STUDENT")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("answers before publish status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()

	// wrong teacher cannot publish
	res = doReq(t, srv, "POST", "/results/publish/7", "", "12", "TEACHER")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign teacher publish status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()

	// owner publishes
	res = doReq(t, srv, "POST", "/results/publish/7", "", "11", "TEACHER")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("publish status = %d", res.StatusCode)
	}
	res.Body.Close()

	res = doReq(t, srv, "GET", "/attempts/student?visibleOnly=true", "", "3", "STUDENT")
	defer res.Body.Close()
	list = nil
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].VisibleToStudent {
		t.Fatalf("published result not visible: %+v", list)
	}

	res = doReq(t, srv, "GET", "/attempts/student/7/answers", "", "3", "STUDENT")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("answers after publish status = %d", res.StatusCode)
	}
	defer res.Body.Close()
	var recs []attempt.AnswerRecord
	if err := json.NewDecoder(res.Body).Decode(&recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("answer records = %d, want 2", len(recs))
	}
}

func TestRoleGating(t *testing.T) {
	srv := newTestServer(t)

	// teacher cannot start attempts
	res := doReq(t, srv, "POST", "/attempts/start/7?studentName=T", "", "11", "TEACHER")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("teacher start status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()

	// student cannot read teacher dashboards or publish
	res = doReq(t, srv, "GET", "/attempts/quiz/7", "", "3", "STUDENT")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("student quiz list status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()

	res = doReq(t, srv, "POST", "/results/publish/7", "", "3", "STUDENT")
	if res.StatusCode != http.StatusForbidden {
		t.Fatalf("student publish status = %d, want 403", res.StatusCode)
	}
	res.Body.Close()

	// missing identity headers
	req, _ := http.NewRequest("GET", srv.URL+"/attempts/student", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", res.StatusCode)
	}
	res.Body.Close()
}

func TestSubmitValidation(t *testing.T) {
	srv := newTestServer(t)

	res := doReq(t, srv, "POST", "/attempts/start/7?studentName=Sam", "", "3", "STUDENT")
	res.Body.Close()

	// no answers
	res = doReq(t, srv, "POST", "/attempts/submit", `{"quizId":7,"answers":[]}`, "3", "STUDENT")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty answers status = %d, want 400", res.StatusCode)
	}
	res.Body.Close()

	// unknown question fails the whole submission
	res = doReq(t, srv, "POST", "/attempts/submit",
		`{"quizId":7,"answers":[{"questionId":99,"answer":"x"}]}`, "3", "STUDENT")
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown question status = %d, want 400", res.StatusCode)
	}
	res.Body.Close()

	// attempt still submittable after the rejected payloads
	res = doReq(t, srv, "POST", "/attempts/submit",
		`{"quizId":7,"answers":[{"questionId":2,"answer":"true"}]}`, "3", "STUDENT")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("valid submit after rejects status = %d", res.StatusCode)
	}
	a := decodeAttempt(t, res)
	if a.ObtainedMarks != 2 {
		t.Fatalf("obtained = %d, want 2", a.ObtainedMarks)
	}
}
