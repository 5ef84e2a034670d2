package quizbank

// Read-only snapshots of quiz content owned by the question bank service.
// Everything here is fetched fresh on each lifecycle operation; a stale
// answer key would be a grading bug, so no caching happens on this side.

type Quiz struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	TotalMarks     int    `json:"totalMarks"`
	TeacherID      int64  `json:"teacherId"`
	AssignedGroups string `json:"assignedGroups"`
}

type Option struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"isCorrect"`
}

type Question struct {
	ID            int64    `json:"id"`
	Text          string   `json:"text"`
	Type          string   `json:"type"` // MULTIPLE_CHOICE, TRUE_FALSE, FILL_IN_BLANK
	Marks         int      `json:"marks"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []Option `json:"options"`
}
