package service

import (
	"context"

	"github.com/stemsi/qbank-backend/internal/model"
)

// QuestionCatalog is the read side of the question store used by the exam assembler.
type QuestionCatalog interface {
	ListByOwner(ctx context.Context, ownerID int64, filter model.QuestionFilter) ([]model.Question, error)
	GetByID(ctx context.Context, id int64) (*model.Question, error)
}

// QuestionStore is implemented by repository.QuestionRepository.
type QuestionStore interface {
	QuestionCatalog
	Create(ctx context.Context, q *model.Question) error
	Update(ctx context.Context, q *model.Question) error
	Delete(ctx context.Context, ownerID, id int64) error
}

// CourseStore is implemented by repository.CourseRepository.
type CourseStore interface {
	Create(ctx context.Context, c *model.Course) error
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Course, error)
	ExistsForOwner(ctx context.Context, ownerID, courseID int64) (bool, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

// ExamStore is implemented by repository.ExamRepository.
type ExamStore interface {
	Save(ctx context.Context, c *model.ExamCandidate) (*model.ExamPaper, error)
	GetForOwner(ctx context.Context, id, ownerID int64) (*model.ExamPaper, error)
	ListQuestions(ctx context.Context, examID int64) ([]model.Question, error)
	Delete(ctx context.Context, id, ownerID int64) error
	ListSummaries(ctx context.Context, ownerID int64, search string) ([]model.ExamSummary, error)
}

// UserStore is implemented by repository.UserRepository.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}
