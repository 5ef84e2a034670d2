package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/deepanshusingla076/quiz-master/internal/attempt"
	authmw "github.com/deepanshusingla076/quiz-master/internal/auth/middleware"
)

// GET /attempts/quiz/{quizId} and /attempts/quiz/{quizId}/group/{groupSection}
func ListQuizAttemptsHandler(svc *attempt.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID, err := strconv.ParseInt(chi.URLParam(r, "quizId"), 10, 64)
		if err != nil {
			http.Error(w, "invalid quiz id", http.StatusBadRequest)
			return
		}
		group := chi.URLParam(r, "groupSection")
		list, err := svc.ListForQuiz(r.Context(), quizID, group)
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

// POST /results/publish/{quizId} and /results/unpublish/{quizId}
func PublishResultsHandler(svc *attempt.Service, publish bool) http.HandlerFunc {
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
		if publish {
			err = svc.Publish(r.Context(), quizID, id.UserID)
		} else {
			err = svc.Unpublish(r.Context(), quizID, id.UserID)
		}
		if err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
