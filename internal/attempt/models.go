package attempt

// Status of an attempt. There is no terminal state: SUBMITTED and PUBLISHED
// are both stable and only teacher action toggles between them.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusSubmitted  Status = "SUBMITTED"
	StatusPublished  Status = "PUBLISHED"
)

// Attempt is the permanent record of one student's single permitted try at
// one quiz. At most one row may ever exist per (quiz_id, student_id); the
// storage layer enforces that with a unique constraint.
type Attempt struct {
	ID               string  `json:"id"`
	QuizID           int64   `json:"quizId"`
	StudentID        int64   `json:"studentId"`
	StudentEmail     string  `json:"studentEmail"`
	StudentName      string  `json:"studentName"`
	GroupSection     string  `json:"groupSection,omitempty"`
	TotalMarks       int     `json:"totalMarks"`
	ObtainedMarks    int     `json:"obtainedMarks"`
	Percentage       float64 `json:"percentage"`
	Status           Status  `json:"status"`
	StartedAt        int64   `json:"startedAt"`
	SubmittedAt      *int64  `json:"submittedAt,omitempty"`
	TimeTakenMinutes int     `json:"timeTakenMinutes,omitempty"`
	VisibleToStudent bool    `json:"visibleToStudent"`
}

// AnswerRecord is owned by exactly one attempt. Records are written once,
// atomically, at submission and never mutated afterwards. CorrectAnswer is a
// snapshot of the key at grading time, kept for audit.
type AnswerRecord struct {
	ID              int64  `json:"id"`
	AttemptID       string `json:"attemptId"`
	QuestionID      int64  `json:"questionId"`
	SubmittedAnswer string `json:"submittedAnswer"`
	CorrectAnswer   string `json:"correctAnswer"`
	IsCorrect       bool   `json:"isCorrect"`
	MarksAwarded    int    `json:"marksAwarded"`
	TotalMarks      int    `json:"totalMarks"`
}
