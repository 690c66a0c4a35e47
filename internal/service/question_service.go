package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/repository"
)

// QuestionService handles the owner-scoped question catalog.
type QuestionService struct {
	questions QuestionStore
	courses   CourseStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, courses CourseStore) *QuestionService {
	return &QuestionService{questions: questions, courses: courses}
}

// List retrieves the owner's questions in paper order.
func (s *QuestionService) List(ctx context.Context, ownerID int64, filter model.QuestionFilter) ([]model.Question, error) {
	questions, err := s.questions.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Get retrieves one question. Questions of other owners are reported as not found.
func (s *QuestionService) Get(ctx context.Context, ownerID, id int64) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if q.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return q, nil
}

// Create validates and stores a new question for q.OwnerID.
func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	if err := s.prepare(ctx, q); err != nil {
		return err
	}
	return s.questions.Create(ctx, q)
}

// Update validates and rewrites an existing question of q.OwnerID.
func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	if err := s.prepare(ctx, q); err != nil {
		return err
	}
	if err := s.questions.Update(ctx, q); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Delete removes an owned question unless a saved exam still uses it.
func (s *QuestionService) Delete(ctx context.Context, ownerID, id int64) error {
	err := s.questions.Delete(ctx, ownerID, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferenced):
		return &ConflictError{Reason: "question is used by an exam"}
	default:
		return err
	}
}

// prepare normalizes q in place and enforces the question invariants.
func (s *QuestionService) prepare(ctx context.Context, q *model.Question) error {
	q.Topic = strings.TrimSpace(q.Topic)
	q.QuestionText = strings.TrimSpace(q.QuestionText)

	switch {
	case q.Topic == "":
		return invalid("topic", "empty topic")
	case q.QuestionText == "":
		return invalid("question_text", "empty question text")
	case !q.QuestionType.Valid():
		return invalid("question_type", "unknown question type")
	case q.Marks <= 0:
		return invalid("marks", "marks must be greater than 0")
	}

	if q.QuestionType == model.QuestionTypeMCQ {
		if err := normalizeOptions(q); err != nil {
			return err
		}
	}
	q.ClearNonMCQFields()

	ok, err := s.courses.ExistsForOwner(ctx, q.OwnerID, q.CourseID)
	if err != nil {
		return fmt.Errorf("check course: %w", err)
	}
	if !ok {
		return invalid("course_id", "unknown course")
	}
	return nil
}

func normalizeOptions(q *model.Question) error {
	if q.Options == nil {
		return invalid("options", "multiple choice questions need four options")
	}
	o := q.Options
	o.A, o.B, o.C, o.D = strings.TrimSpace(o.A), strings.TrimSpace(o.B), strings.TrimSpace(o.C), strings.TrimSpace(o.D)
	if o.A == "" || o.B == "" || o.C == "" || o.D == "" {
		return invalid("options", "multiple choice questions need four options")
	}
	switch q.CorrectOption {
	case "A", "B", "C", "D":
		return nil
	default:
		return invalid("correct_option", "correct option must be A, B, C or D")
	}
}
