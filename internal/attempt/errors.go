package attempt

import "errors"

var (
	// ErrDuplicateAttempt: the (quiz, student) pair already has an attempt.
	ErrDuplicateAttempt = errors.New("quiz already attempted, only one attempt is allowed")
	// ErrNotFound: no attempt was ever started for the pair.
	ErrNotFound = errors.New("attempt not found")
	// ErrAlreadySubmitted: the attempt left IN_PROGRESS and cannot be resubmitted.
	ErrAlreadySubmitted = errors.New("quiz has already been submitted")
	// ErrUnknownQuestion: a submitted answer references a question that is not
	// part of the quiz. The whole submission is rejected.
	ErrUnknownQuestion = errors.New("question not part of quiz")
	// ErrUnauthorized: the caller does not own the quiz.
	ErrUnauthorized = errors.New("not the owner of this quiz")
)
