package grading

import "strings"

// Question type identifiers as the question bank stores them.
const (
	TypeMultipleChoice = "MULTIPLE_CHOICE"
	TypeTrueFalse      = "TRUE_FALSE"
	TypeFillInBlank    = "FILL_IN_BLANK"
)

type Option struct {
	Text    string
	Correct bool
}

// Q is a minimal view of a question needed for grading.
// Keep this in sync with whatever fields the quiz bank client exposes.
type Q struct {
	Type          string
	Marks         int
	CorrectAnswer string
	Options       []Option
}

// Result is the outcome of grading a single submitted answer.
type Result struct {
	Correct      bool
	MarksAwarded int
}

// Strategy grades a single question.
type Strategy interface {
	Grade(q Q, answer string) Result
}

// Grader routes by question type to the correct Strategy.
// Grading is pure: identical inputs always yield identical results.
type Grader interface {
	Grade(q Q, answer string) Result
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(q Q, answer string) Result {
	// A blank answer never scores, regardless of type.
	if strings.TrimSpace(answer) == "" {
		return Result{}
	}
	s, ok := g.strategies[strings.ToUpper(q.Type)]
	if !ok {
		// Unrecognized type: fail closed, never award marks.
		return Result{}
	}
	return s.Grade(q, answer)
}

// NewDefaultGrader installs built-in strategies.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[string]Strategy{
			TypeMultipleChoice: optionMatchStrategy{},
			TypeTrueFalse:      keyMatchStrategy{},
			TypeFillInBlank:    keyMatchStrategy{},
		},
	}
}

// --- Strategies ---

// optionMatchStrategy awards full marks when the submitted text is an exact,
// case-sensitive match of any option flagged correct. Questions authored with
// zero or several correct flags grade against whichever options are flagged.
type optionMatchStrategy struct{}

func (optionMatchStrategy) Grade(q Q, answer string) Result {
	for _, o := range q.Options {
		if o.Correct && o.Text == answer {
			return Result{Correct: true, MarksAwarded: q.Marks}
		}
	}
	return Result{}
}

// keyMatchStrategy compares the trimmed answer to the question's answer key,
// case-insensitively.
type keyMatchStrategy struct{}

func (keyMatchStrategy) Grade(q Q, answer string) Result {
	if q.CorrectAnswer == "" {
		return Result{}
	}
	if strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), strings.TrimSpace(answer)) {
		return Result{Correct: true, MarksAwarded: q.Marks}
	}
	return Result{}
}
