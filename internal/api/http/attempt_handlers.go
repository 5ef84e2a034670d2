package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/deepanshusingla076/quiz-master/internal/attempt"
	authmw "github.com/deepanshusingla076/quiz-master/internal/auth/middleware"
)

var validate = validator.New()

// POST /attempts/start/{quizId}?studentName=...&groupSection=...
func StartAttemptHandler(svc *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := strconv.ParseInt(chi.URLParam(r, "quizId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid quiz id", http.StatusBadRequest)
			return
		}
		id, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)
			return
		}
		name := strings.TrimSpace(r.URL.Query().Get("studentName"))
		if name == "" {
			http.Error(w, "studentName required", http.StatusBadRequest)
			return
		}
		a, err := svc.Start(r.Context(), quizID, attempt.StudentInfo{
			ID:           id.UserID,
			Email:        id.Email,
			Name:         name,
			GroupSection: strings.TrimSpace(r.URL.Query().Get("groupSection")),
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

type submitAnswerReq struct {
	QuestionID int64  `json:"questionId" validate:"required"`
	Answer     string `json:"answer"`
}

type submitReq struct {
	QuizID           int64             `json:"quizId" validate:"required"`
	Answers          []submitAnswerReq `json:"answers" validate:"required,min=1,dive"`
	TimeTakenMinutes int               `json:"timeTakenMinutes" validate:"gte=0"`
}

// POST /attempts/submit
func SubmitAttemptHandler(svc *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "invalid submission: "+err.Error(), http.StatusBadRequest)
			return
		}
		id, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)
			return
		}
		answers := make([]attempt.SubmittedAnswer, 0, len(req.Answers))
		for _, a := range req.Answers {
			answers = append(answers, attempt.SubmittedAnswer{QuestionID: a.QuestionID, Answer: a.Answer})
		}
		a, err := svc.Submit(r.Context(), id.UserID, attempt.Submission{
			QuizID:           req.QuizID,
			Answers:          answers,
			TimeTakenMinutes: req.TimeTakenMinutes,
		})
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// GET /attempts/student?visibleOnly=bool
func ListStudentAttemptsHandler(svc *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)
			return
		}
		visibleOnly := true
		if v := r.URL.Query().Get("visibleOnly"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "invalid visibleOnly", http.StatusBadRequest)
				return
			}
			visibleOnly = b
		}
		list, err := svc.ListForStudent(r.Context(), id.UserID, visibleOnly)
		if err != nil {
			writeErr(w, err)
			return
		}
		if list == nil {
			list = []attempt.Attempt{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /attempts/student/{quizId}/answers
func StudentAnswersHandler(svc *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := strconv.ParseInt(chi.URLParam(r, "quizId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid quiz id", http.StatusBadRequest)
			return
		}
		id, ok := authmw.IdentityFromContext(r.Context())
		if !ok {
			http.Error(w, "missing identity", http.StatusUnauthorized)
			return
		}
		records, err := svc.AnswersForStudent(r.Context(), quizID, id.UserID)
		if err != nil {
			writeErr(w, err)
			return
		}
		if records == nil {
			records = []attempt.AnswerRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}
