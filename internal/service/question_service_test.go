package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/model"
)

func newQuestionFixture() (*memStore, *QuestionService, *CourseService) {
	m := newMemStore()
	m.courses[1] = model.Course{ID: 1, OwnerID: lecturerA, Name: "Physics"}
	m.courses[3] = model.Course{ID: 3, OwnerID: lecturerB, Name: "Biology"}
	return m, NewQuestionService(m, memCourses{m}), NewCourseService(memCourses{m}, zerolog.Nop())
}

func TestQuestionCreateClearsOptionsForNonMCQ(t *testing.T) {
	_, svc, _ := newQuestionFixture()

	q := &model.Question{
		OwnerID:       lecturerA,
		CourseID:      1,
		Topic:         " Optics ",
		QuestionText:  "Explain refraction.",
		QuestionType:  model.QuestionTypeEssay,
		Marks:         10,
		Options:       &model.MCQOptions{A: "x", B: "y", C: "z", D: "w"},
		CorrectOption: "A",
	}
	if err := svc.Create(context.Background(), q); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if q.Options != nil || q.CorrectOption != "" {
		t.Errorf("essay kept options: %+v %q", q.Options, q.CorrectOption)
	}
	if q.Topic != "Optics" {
		t.Errorf("Topic = %q, want trimmed", q.Topic)
	}
}

func TestQuestionCreateValidation(t *testing.T) {
	valid := func() *model.Question {
		return &model.Question{
			OwnerID:       lecturerA,
			CourseID:      1,
			Topic:         "Waves",
			QuestionText:  "Pick one.",
			QuestionType:  model.QuestionTypeMCQ,
			Marks:         2,
			Options:       &model.MCQOptions{A: "1", B: "2", C: "3", D: "4"},
			CorrectOption: "B",
		}
	}

	tests := []struct {
		name   string
		mutate func(q *model.Question)
		field  string
	}{
		{"zero marks", func(q *model.Question) { q.Marks = 0 }, "marks"},
		{"blank topic", func(q *model.Question) { q.Topic = " " }, "topic"},
		{"unknown type", func(q *model.Question) { q.QuestionType = "ORAL" }, "question_type"},
		{"missing option", func(q *model.Question) { q.Options.C = "" }, "options"},
		{"bad correct option", func(q *model.Question) { q.CorrectOption = "E" }, "correct_option"},
		{"foreign course", func(q *model.Question) { q.CourseID = 3 }, "course_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc, _ := newQuestionFixture()
			q := valid()
			tt.mutate(q)
			err := svc.Create(context.Background(), q)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestQuestionListFiltersByTopic(t *testing.T) {
	m, svc, _ := newQuestionFixture()
	m.addQuestion(model.Question{ID: 1, OwnerID: lecturerA, CourseID: 1, Topic: "Geometric Optics", Marks: 1, QuestionType: model.QuestionTypeEssay})
	m.addQuestion(model.Question{ID: 2, OwnerID: lecturerA, CourseID: 1, Topic: "Waves", Marks: 1, QuestionType: model.QuestionTypeEssay})
	m.addQuestion(model.Question{ID: 3, OwnerID: lecturerB, CourseID: 3, Topic: "Optics", Marks: 1, QuestionType: model.QuestionTypeEssay})

	got, err := svc.List(context.Background(), lecturerA, model.QuestionFilter{Topic: " OPTICS "})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got %+v, want only question 1", got)
	}

	got, err = svc.List(context.Background(), lecturerA, model.QuestionFilter{Topic: "thermo"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %+v, want empty non-nil slice", got)
	}
}

func TestQuestionGetForeignIsNotFound(t *testing.T) {
	m, svc, _ := newQuestionFixture()
	m.addQuestion(model.Question{ID: 11, OwnerID: lecturerB, CourseID: 3, Marks: 1, QuestionType: model.QuestionTypeEssay})

	if _, err := svc.Get(context.Background(), lecturerA, 11); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestQuestionDeleteUsedByExamIsConflict(t *testing.T) {
	m, svc, _ := newQuestionFixture()
	m.addQuestion(model.Question{ID: 5, OwnerID: lecturerA, CourseID: 1, Marks: 1, QuestionType: model.QuestionTypeEssay})
	m.links[50] = []int64{5}

	err := svc.Delete(context.Background(), lecturerA, 5)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCourseLifecycle(t *testing.T) {
	m, _, courses := newQuestionFixture()
	ctx := context.Background()

	c, err := courses.Create(ctx, lecturerA, "  Algebra ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Name != "Algebra" {
		t.Errorf("Name = %q", c.Name)
	}

	var ce *ConflictError
	if _, err := courses.Create(ctx, lecturerA, "Algebra"); !errors.As(err, &ce) {
		t.Errorf("duplicate err = %v, want ConflictError", err)
	}

	m.addQuestion(model.Question{ID: 5, OwnerID: lecturerA, CourseID: c.ID, Marks: 1, QuestionType: model.QuestionTypeEssay})
	if err := courses.Delete(ctx, lecturerA, c.ID); !errors.As(err, &ce) {
		t.Errorf("delete with questions err = %v, want ConflictError", err)
	}
	if err := courses.Delete(ctx, lecturerB, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign delete err = %v, want ErrNotFound", err)
	}

	var ve *ValidationError
	if _, err := courses.Create(ctx, lecturerA, " "); !errors.As(err, &ve) {
		t.Errorf("blank name err = %v, want ValidationError", err)
	}
}
