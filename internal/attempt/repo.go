package attempt

import "context"

type ListOpts struct {
	QuizID       int64
	StudentID    int64
	GroupSection string // filter by the group recorded at start time
	VisibleOnly  bool   // only attempts the teacher has published
}

// Store is the durable record of attempts and their answers.
//
// Create must rely on the storage-level unique constraint on
// (quiz_id, student_id) and return ErrDuplicateAttempt on violation; any
// existence pre-check by callers is a fast path only. SaveSubmission writes
// the attempt's score fields and its answer records as one transaction.
type Store interface {
	Create(ctx context.Context, a Attempt) (Attempt, error)
	GetByQuizAndStudent(ctx context.Context, quizID, studentID int64) (Attempt, error)
	SaveSubmission(ctx context.Context, a Attempt, answers []AnswerRecord) error
	List(ctx context.Context, opts ListOpts) ([]Attempt, error)
	GetAnswers(ctx context.Context, attemptID string) ([]AnswerRecord, error)

	// SetPublished bulk-transitions attempts for a quiz: publish moves
	// SUBMITTED rows to PUBLISHED with visible_to_student set, unpublish
	// reverses PUBLISHED rows. Both directions are idempotent. Returns the
	// number of rows transitioned.
	SetPublished(ctx context.Context, quizID int64, published bool) (int64, error)
}
