package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/repository"
)

// CourseService manages the courses a lecturer owns.
type CourseService struct {
	courses CourseStore
	log     zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses: courses,
		log:     log.With().Str("component", "course_service").Logger(),
	}
}

// List returns the owner's courses, never nil.
func (s *CourseService) List(ctx context.Context, ownerID int64) ([]model.Course, error) {
	courses, err := s.courses.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Create adds a course named name for the owner.
func (s *CourseService) Create(ctx context.Context, ownerID int64, name string) (*model.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "empty course name")
	}

	c := &model.Course{OwnerID: ownerID, Name: name}
	if err := s.courses.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Reason: "course already exists"}
		}
		return nil, err
	}

	s.log.Info().Int64("course_id", c.ID).Int64("owner_id", ownerID).Msg("Course created")
	return c, nil
}

// Delete removes an owned course that no question references.
func (s *CourseService) Delete(ctx context.Context, ownerID, id int64) error {
	err := s.courses.Delete(ctx, ownerID, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferenced):
		return &ConflictError{Reason: "course has questions"}
	default:
		return err
	}
}
