package grading

import "testing"

func mcq(marks int, opts ...Option) Q {
	return Q{Type: TypeMultipleChoice, Marks: marks, Options: opts}
}

func TestGradeMultipleChoice(t *testing.T) {
	g := NewDefaultGrader()
	q := mcq(5,
		Option{Text: "London"},
		Option{Text: "Paris", Correct: true},
		Option{Text: "Berlin"},
	)

	res := g.Grade(q, "Paris")
	if !res.Correct || res.MarksAwarded != 5 {
		t.Fatalf("want correct with 5 marks, got %+v", res)
	}

	// case-sensitive: option text must match exactly
	res = g.Grade(q, "paris")
	if res.Correct || res.MarksAwarded != 0 {
		t.Fatalf("lowercase should not match, got %+v", res)
	}

	res = g.Grade(q, "Madrid")
	if res.Correct {
		t.Fatalf("wrong option graded correct: %+v", res)
	}
}

func TestGradeMultipleChoiceFlaggedOptions(t *testing.T) {
	g := NewDefaultGrader()

	// no option flagged correct: nothing can match
	none := mcq(3, Option{Text: "A"}, Option{Text: "B"})
	if res := g.Grade(none, "A"); res.Correct {
		t.Fatalf("no flagged option but graded correct: %+v", res)
	}

	// several flagged: any of them matches
	multi := mcq(3,
		Option{Text: "A", Correct: true},
		Option{Text: "B", Correct: true},
		Option{Text: "C"},
	)
	for _, ans := range []string{"A", "B"} {
		if res := g.Grade(multi, ans); !res.Correct || res.MarksAwarded != 3 {
			t.Fatalf("answer %q: want correct with 3 marks, got %+v", ans, res)
		}
	}
	if res := g.Grade(multi, "C"); res.Correct {
		t.Fatalf("unflagged option graded correct")
	}
}

func TestGradeTrueFalse(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Type: TypeTrueFalse, Marks: 2, CorrectAnswer: "True"}

	// trimmed and case-insensitive
	if res := g.Grade(q, " true "); !res.Correct || res.MarksAwarded != 2 {
		t.Fatalf("want correct with 2 marks, got %+v", res)
	}
	if res := g.Grade(q, "False"); res.Correct {
		t.Fatalf("wrong answer graded correct")
	}
}

func TestGradeFillInBlank(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Type: TypeFillInBlank, Marks: 4, CorrectAnswer: "Photosynthesis"}

	if res := g.Grade(q, "photosynthesis"); !res.Correct || res.MarksAwarded != 4 {
		t.Fatalf("want correct with 4 marks, got %+v", res)
	}
	if res := g.Grade(q, "photo synthesis"); res.Correct {
		t.Fatalf("near miss graded correct")
	}
}

func TestGradeBlankAnswer(t *testing.T) {
	g := NewDefaultGrader()
	qs := []Q{
		mcq(5, Option{Text: "Paris", Correct: true}),
		{Type: TypeTrueFalse, Marks: 2, CorrectAnswer: "True"},
		{Type: TypeFillInBlank, Marks: 4, CorrectAnswer: "x"},
	}
	for _, q := range qs {
		for _, ans := range []string{"", "   ", "\t\n"} {
			if res := g.Grade(q, ans); res.Correct || res.MarksAwarded != 0 {
				t.Fatalf("type %s blank answer %q graded %+v", q.Type, ans, res)
			}
		}
	}
}

func TestGradeUnknownTypeFailsClosed(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Type: "ESSAY", Marks: 10, CorrectAnswer: "anything"}
	if res := g.Grade(q, "anything"); res.Correct || res.MarksAwarded != 0 {
		t.Fatalf("unknown type awarded marks: %+v", res)
	}
}

func TestGradeTypeCaseInsensitiveRouting(t *testing.T) {
	g := NewDefaultGrader()
	q := Q{Type: "true_false", Marks: 1, CorrectAnswer: "false"}
	if res := g.Grade(q, "FALSE"); !res.Correct {
		t.Fatalf("lowercase type not routed: %+v", res)
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	g := NewDefaultGrader()
	q := mcq(5, Option{Text: "Paris", Correct: true})
	first := g.Grade(q, "Paris")
	for i := 0; i < 100; i++ {
		if got := g.Grade(q, "Paris"); got != first {
			t.Fatalf("grade not deterministic: %+v vs %+v", got, first)
		}
	}
}
