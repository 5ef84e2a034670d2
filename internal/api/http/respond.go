package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deepanshusingla076/quiz-master/internal/attempt"
	"github.com/deepanshusingla076/quiz-master/internal/quizbank"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps the service error taxonomy onto HTTP statuses. Anything not
// in the taxonomy is a server error; the message is not leaked.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attempt.ErrDuplicateAttempt),
		errors.Is(err, attempt.ErrAlreadySubmitted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, attempt.ErrNotFound),
		errors.Is(err, quizbank.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, attempt.ErrUnknownQuestion):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, attempt.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, quizbank.ErrUnavailable):
		http.Error(w, "question bank unavailable", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
