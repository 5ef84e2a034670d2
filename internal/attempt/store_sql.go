package attempt

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(ctx context.Context, a Attempt) (Attempt, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO attempts
		(id, quiz_id, student_id, student_email, student_name, group_section,
		 total_marks, obtained_marks, percentage, status, started_at,
		 time_taken_minutes, visible_to_student)
		VALUES ($1,$2,$3,$4,$5,$6,$7,0,0,$8,$9,0,0)`,
		a.ID, a.QuizID, a.StudentID, a.StudentEmail, a.StudentName, a.GroupSection,
		a.TotalMarks, string(a.Status), a.StartedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Attempt{}, ErrDuplicateAttempt
		}
		return Attempt{}, err
	}
	return a, nil
}

const attemptCols = `id, quiz_id, student_id, student_email, student_name,
	group_section, total_marks, obtained_marks, percentage, status, started_at,
	submitted_at, time_taken_minutes, visible_to_student`

func (s *SQLStore) GetByQuizAndStudent(ctx context.Context, quizID, studentID int64) (Attempt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+attemptCols+` FROM attempts WHERE quiz_id=$1 AND student_id=$2`,
		quizID, studentID)
	return scanAttempt(row)
}

// SaveSubmission writes the score fields and every answer record in a single
// transaction; a failure anywhere leaves the attempt untouched.
func (s *SQLStore) SaveSubmission(ctx context.Context, a Attempt, answers []AnswerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE attempts
		SET status=$1, obtained_marks=$2, percentage=$3, submitted_at=$4,
		    time_taken_minutes=$5, visible_to_student=0
		WHERE id=$6 AND status=$7`,
		string(StatusSubmitted), a.ObtainedMarks, a.Percentage, a.SubmittedAt,
		a.TimeTakenMinutes, a.ID, string(StatusInProgress))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Lost a race with another submit for the same attempt.
		return ErrAlreadySubmitted
	}
	for _, ans := range answers {
		if _, err := tx.ExecContext(ctx, `INSERT INTO answers
			(attempt_id, question_id, submitted_answer, correct_answer,
			 is_correct, marks_awarded, total_marks)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			a.ID, ans.QuestionID, ans.SubmittedAnswer, ans.CorrectAnswer,
			boolToInt(ans.IsCorrect), ans.MarksAwarded, ans.TotalMarks); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Attempt, error) {
	q := `SELECT ` + attemptCols + ` FROM attempts WHERE 1=1`
	args := []interface{}{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		q += " AND " + strings.Replace(cond, "?", placeholder(len(args)), 1)
	}
	if opts.QuizID != 0 {
		add("quiz_id=?", opts.QuizID)
	}
	if opts.StudentID != 0 {
		add("student_id=?", opts.StudentID)
	}
	if opts.GroupSection != "" {
		add("group_section=?", opts.GroupSection)
	}
	if opts.VisibleOnly {
		q += " AND visible_to_student=1"
	}
	q += " ORDER BY started_at DESC"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetAnswers(ctx context.Context, attemptID string) ([]AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, attempt_id, question_id,
		submitted_answer, correct_answer, is_correct, marks_awarded, total_marks
		FROM answers WHERE attempt_id=$1 ORDER BY id`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var r AnswerRecord
		var correct int
		if err := rows.Scan(&r.ID, &r.AttemptID, &r.QuestionID, &r.SubmittedAnswer,
			&r.CorrectAnswer, &correct, &r.MarksAwarded, &r.TotalMarks); err != nil {
			return nil, err
		}
		r.IsCorrect = correct != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) SetPublished(ctx context.Context, quizID int64, published bool) (int64, error) {
	var res sql.Result
	var err error
	if published {
		res, err = s.db.ExecContext(ctx, `UPDATE attempts
			SET status=$1, visible_to_student=1
			WHERE quiz_id=$2 AND status=$3`,
			string(StatusPublished), quizID, string(StatusSubmitted))
	} else {
		res, err = s.db.ExecContext(ctx, `UPDATE attempts
			SET status=$1, visible_to_student=0
			WHERE quiz_id=$2 AND status=$3`,
			string(StatusSubmitted), quizID, string(StatusPublished))
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row scanner) (Attempt, error) {
	var a Attempt
	var status string
	var submittedAt sql.NullInt64
	var visible int
	err := row.Scan(&a.ID, &a.QuizID, &a.StudentID, &a.StudentEmail, &a.StudentName,
		&a.GroupSection, &a.TotalMarks, &a.ObtainedMarks, &a.Percentage, &status,
		&a.StartedAt, &submittedAt, &a.TimeTakenMinutes, &visible)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrNotFound
		}
		return Attempt{}, err
	}
	a.Status = Status(status)
	if submittedAt.Valid {
		v := submittedAt.Int64
		a.SubmittedAt = &v
	}
	a.VisibleToStudent = visible != 0
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc sqlite reports constraint failures by message only
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func placeholder(n int) string {
	// $N works for both pgx and modernc sqlite
	return "$" + strconv.Itoa(n)
}
