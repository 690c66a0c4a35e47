package validator

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stemsi/qbank-backend/internal/model"
)

func newValidate(t *testing.T) *govalidator.Validate {
	t.Helper()
	v := govalidator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return v
}

func TestMCQRequiresOptions(t *testing.T) {
	v := newValidate(t)

	req := model.QuestionRequest{
		CourseID:     1,
		Topic:        "Waves",
		QuestionText: "Which?",
		QuestionType: "MCQ",
		Marks:        2,
		OptionA:      "1",
		OptionB:      "2",
		OptionC:      "  ",
	}
	fields := TranslateErrors(v.Struct(req))

	for _, f := range []string{"option_c", "option_d", "correct_option"} {
		if fields[f] == "" {
			t.Errorf("missing error for %s in %v", f, fields)
		}
	}
	if fields["option_c"] != "option_c is required for MCQ questions" {
		t.Errorf("option_c message = %q", fields["option_c"])
	}
	if _, ok := fields["option_a"]; ok {
		t.Errorf("option_a reported: %v", fields)
	}
}

func TestEssayNeedsNoOptions(t *testing.T) {
	v := newValidate(t)

	req := model.QuestionRequest{
		CourseID:     1,
		Topic:        "Optics",
		QuestionText: "Explain refraction.",
		QuestionType: "ESSAY",
		Marks:        10,
	}
	if err := v.Struct(req); err != nil {
		t.Errorf("unexpected error: %v", TranslateErrors(err))
	}
}

func TestNotBlankTranslated(t *testing.T) {
	v := newValidate(t)

	fields := TranslateErrors(v.Struct(model.CreateCourseRequest{Name: "   "}))
	if fields["name"] != "name must not be blank" {
		t.Errorf("name message = %q (%v)", fields["name"], fields)
	}
}
