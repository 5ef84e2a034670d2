package attempt

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/deepanshusingla076/quiz-master/internal/grading"
	"github.com/deepanshusingla076/quiz-master/internal/leaderboard"
	"github.com/deepanshusingla076/quiz-master/internal/quizbank"
)

// StudentInfo is the identity captured on the attempt at start time, as the
// gateway forwarded it.
type StudentInfo struct {
	ID           int64
	Email        string
	Name         string
	GroupSection string
}

type SubmittedAnswer struct {
	QuestionID int64
	Answer     string
}

type Submission struct {
	QuizID           int64
	Answers          []SubmittedAnswer
	TimeTakenMinutes int
}

// Service orchestrates the attempt lifecycle: start, submit, publish and
// unpublish. All durable state lives in the Store; quiz content is fetched
// fresh from the question bank on every operation.
type Service struct {
	store    Store
	quizzes  quizbank.Provider
	grader   grading.Grader
	notifier leaderboard.Notifier
	now      func() time.Time
}

func NewService(store Store, quizzes quizbank.Provider, grader grading.Grader, notifier leaderboard.Notifier) *Service {
	if notifier == nil {
		notifier = leaderboard.NopNotifier{}
	}
	return &Service{
		store:    store,
		quizzes:  quizzes,
		grader:   grader,
		notifier: notifier,
		now:      time.Now,
	}
}

// Start creates the one permitted attempt for (quizID, student). The
// existence check here is only a fast path; two concurrent starts both pass
// it, and the unique constraint inside Store.Create decides the winner.
func (s *Service) Start(ctx context.Context, quizID int64, student StudentInfo) (Attempt, error) {
	if _, err := s.store.GetByQuizAndStudent(ctx, quizID, student.ID); err == nil {
		return Attempt{}, ErrDuplicateAttempt
	} else if !errors.Is(err, ErrNotFound) {
		return Attempt{}, err
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return Attempt{}, err
	}

	a := Attempt{
		ID:           uuid.NewString(),
		QuizID:       quizID,
		StudentID:    student.ID,
		StudentEmail: student.Email,
		StudentName:  student.Name,
		GroupSection: student.GroupSection,
		TotalMarks:   quiz.TotalMarks,
		Status:       StatusInProgress,
		StartedAt:    s.now().Unix(),
	}
	return s.store.Create(ctx, a)
}

// Submit grades every answer against the quiz's current question set and
// writes the score plus the answer records atomically. A questionID outside
// the quiz fails the whole submission; nothing is committed.
func (s *Service) Submit(ctx context.Context, studentID int64, sub Submission) (Attempt, error) {
	a, err := s.store.GetByQuizAndStudent(ctx, sub.QuizID, studentID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status != StatusInProgress {
		return Attempt{}, ErrAlreadySubmitted
	}

	questions, err := s.quizzes.GetQuestions(ctx, sub.QuizID)
	if err != nil {
		return Attempt{}, err
	}
	byID := make(map[int64]quizbank.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	records := make([]AnswerRecord, 0, len(sub.Answers))
	obtained := 0
	for _, ans := range sub.Answers {
		q, ok := byID[ans.QuestionID]
		if !ok {
			return Attempt{}, ErrUnknownQuestion
		}
		res := s.grader.Grade(gradingQ(q), ans.Answer)
		records = append(records, AnswerRecord{
			AttemptID:       a.ID,
			QuestionID:      q.ID,
			SubmittedAnswer: ans.Answer,
			CorrectAnswer:   q.CorrectAnswer,
			IsCorrect:       res.Correct,
			MarksAwarded:    res.MarksAwarded,
			TotalMarks:      q.Marks,
		})
		obtained += res.MarksAwarded
	}

	submittedAt := s.now().Unix()
	a.ObtainedMarks = obtained
	a.Percentage = 0
	if a.TotalMarks > 0 {
		a.Percentage = float64(obtained) / float64(a.TotalMarks) * 100
	}
	a.Status = StatusSubmitted
	a.SubmittedAt = &submittedAt
	a.TimeTakenMinutes = sub.TimeTakenMinutes
	a.VisibleToStudent = false

	if err := s.store.SaveSubmission(ctx, a, records); err != nil {
		return Attempt{}, err
	}

	s.notify(leaderboard.Event{
		StudentID:  studentID,
		QuizID:     sub.QuizID,
		Score:      obtained,
		Percentage: a.Percentage,
	})
	return a, nil
}

// notify dispatches the leaderboard event off the request path. The
// submission is already committed; a notifier failure is logged and dropped.
func (s *Service) notify(e leaderboard.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.Publish(ctx, e); err != nil {
			log.Printf("leaderboard publish failed (quiz=%d student=%d): %v", e.QuizID, e.StudentID, err)
		}
	}()
}

// Publish makes every submitted attempt for the quiz visible to its student.
// Already-published attempts are left unchanged.
func (s *Service) Publish(ctx context.Context, quizID, teacherID int64) error {
	if err := s.authorizeOwner(ctx, quizID, teacherID); err != nil {
		return err
	}
	_, err := s.store.SetPublished(ctx, quizID, true)
	return err
}

// Unpublish reverses Publish. Idempotent.
func (s *Service) Unpublish(ctx context.Context, quizID, teacherID int64) error {
	if err := s.authorizeOwner(ctx, quizID, teacherID); err != nil {
		return err
	}
	_, err := s.store.SetPublished(ctx, quizID, false)
	return err
}

func (s *Service) authorizeOwner(ctx context.Context, quizID, teacherID int64) error {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if quiz.TeacherID != teacherID {
		return ErrUnauthorized
	}
	return nil
}

func (s *Service) ListForStudent(ctx context.Context, studentID int64, visibleOnly bool) ([]Attempt, error) {
	return s.store.List(ctx, ListOpts{StudentID: studentID, VisibleOnly: visibleOnly})
}

func (s *Service) ListForQuiz(ctx context.Context, quizID int64, groupSection string) ([]Attempt, error) {
	return s.store.List(ctx, ListOpts{QuizID: quizID, GroupSection: groupSection})
}

// AnswersForStudent returns the graded answer records of the student's own
// attempt, but only once the teacher has published results.
func (s *Service) AnswersForStudent(ctx context.Context, quizID, studentID int64) ([]AnswerRecord, error) {
	a, err := s.store.GetByQuizAndStudent(ctx, quizID, studentID)
	if err != nil {
		return nil, err
	}
	if !a.VisibleToStudent {
		return nil, ErrUnauthorized
	}
	return s.store.GetAnswers(ctx, a.ID)
}

func gradingQ(q quizbank.Question) grading.Q {
	opts := make([]grading.Option, 0, len(q.Options))
	for _, o := range q.Options {
		opts = append(opts, grading.Option{Text: o.Text, Correct: o.Correct})
	}
	return grading.Q{
		Type:          q.Type,
		Marks:         q.Marks,
		CorrectAnswer: q.CorrectAnswer,
		Options:       opts,
	}
}
