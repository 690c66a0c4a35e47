package model

import (
	"testing"
	"time"
)

func TestSortForPaper(t *testing.T) {
	qs := []Question{
		{ID: 5, CourseName: "Physics", Topic: "Optics", QuestionType: QuestionTypeMCQ},
		{ID: 4, CourseName: "Algebra", Topic: "Rings", QuestionType: QuestionTypeMCQ},
		{ID: 3, CourseName: "Algebra", Topic: "Groups", QuestionType: QuestionTypeMCQ},
		{ID: 2, CourseName: "Algebra", Topic: "Groups", QuestionType: QuestionTypeEssay},
		{ID: 1, CourseName: "Algebra", Topic: "Groups", QuestionType: QuestionTypeEssay},
	}
	SortForPaper(qs)

	want := []int64{1, 2, 3, 4, 5}
	for i, id := range want {
		if qs[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d (order %v)", i, qs[i].ID, id, ids(qs))
		}
	}
}

func TestClearNonMCQFields(t *testing.T) {
	q := Question{
		QuestionType:  QuestionTypeEssay,
		Options:       &MCQOptions{A: "x"},
		CorrectOption: "A",
	}
	q.ClearNonMCQFields()
	if q.Options != nil || q.CorrectOption != "" {
		t.Errorf("essay kept option data: %+v", q)
	}

	mcq := Question{QuestionType: QuestionTypeMCQ, Options: &MCQOptions{A: "x"}, CorrectOption: "A"}
	mcq.ClearNonMCQFields()
	if mcq.Options == nil || mcq.CorrectOption != "A" {
		t.Errorf("mcq lost option data: %+v", mcq)
	}
}

func TestQuestionRequestToQuestion(t *testing.T) {
	req := QuestionRequest{
		CourseID: 3, Topic: "Groups", QuestionText: "Define a group.",
		QuestionType: "ESSAY", Marks: 10, OptionA: "ignored",
	}
	q := req.ToQuestion(42)
	if q.OwnerID != 42 || q.CourseID != 3 || q.Marks != 10 {
		t.Errorf("unexpected question: %+v", q)
	}
	if q.Options != nil {
		t.Error("non-MCQ request produced options")
	}
}

func TestNewExamViewRecomputesTotals(t *testing.T) {
	paper := &ExamPaper{ID: 9, Title: "Quiz 1", CreatedAt: time.Now()}
	view := NewExamView(paper, []Question{
		{ID: 2, CourseName: "B", Marks: 10},
		{ID: 1, CourseName: "A", Marks: 5},
	})
	if view.TotalMarks != 15 || view.QuestionCount != 2 {
		t.Errorf("totals = %d/%d, want 15/2", view.TotalMarks, view.QuestionCount)
	}
	if view.Questions[0].ID != 1 {
		t.Errorf("questions not in paper order: %v", ids(view.Questions))
	}

	empty := NewExamView(paper, nil)
	if empty.Questions == nil || empty.TotalMarks != 0 {
		t.Errorf("empty view = %+v", empty)
	}
}

func ids(qs []Question) []int64 {
	out := make([]int64, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
