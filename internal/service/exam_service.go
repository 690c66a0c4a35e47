package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/qbank-backend/internal/model"
	"github.com/stemsi/qbank-backend/internal/repository"
)

// ExamService assembles, persists and retrieves exam papers. Every call is
// scoped to the owner id handed in by the authenticated request.
type ExamService struct {
	assembler *ExamAssembler
	exams     ExamStore
	log       zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(assembler *ExamAssembler, exams ExamStore, log zerolog.Logger) *ExamService {
	return &ExamService{
		assembler: assembler,
		exams:     exams,
		log:       log.With().Str("component", "exam_service").Logger(),
	}
}

// Create assembles the selection and saves it as one unit. The returned id is
// the handle for Get; on any failure nothing is stored.
func (s *ExamService) Create(ctx context.Context, ownerID int64, title string, questionIDs []int64) (int64, error) {
	candidate, err := s.assembler.Assemble(ctx, ownerID, title, questionIDs)
	if err != nil {
		return 0, err
	}

	paper, err := s.exams.Save(ctx, candidate)
	if err != nil {
		s.log.Error().Err(err).
			Int64("owner_id", ownerID).
			Int("question_count", len(candidate.QuestionIDs)).
			Msg("Exam save rolled back")
		return 0, &PersistenceError{Op: "save", Err: err}
	}

	s.log.Info().
		Int64("exam_id", paper.ID).
		Int64("owner_id", ownerID).
		Int("question_count", len(candidate.QuestionIDs)).
		Int("total_marks", candidate.TotalMarks()).
		Msg("Exam saved")
	return paper.ID, nil
}

// Get loads a saved exam with its questions and a freshly computed mark total.
func (s *ExamService) Get(ctx context.Context, examID, ownerID int64) (*model.ExamView, error) {
	paper, err := s.exams.GetForOwner(ctx, examID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := s.exams.ListQuestions(ctx, paper.ID)
	if err != nil {
		return nil, fmt.Errorf("list exam questions: %w", err)
	}

	return model.NewExamView(paper, questions), nil
}

// Delete removes an owned exam and its question links as one unit.
func (s *ExamService) Delete(ctx context.Context, examID, ownerID int64) error {
	if err := s.exams.Delete(ctx, examID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error().Err(err).Int64("exam_id", examID).Msg("Exam delete rolled back")
		return &PersistenceError{Op: "delete", Err: err}
	}

	s.log.Info().Int64("exam_id", examID).Int64("owner_id", ownerID).Msg("Exam deleted")
	return nil
}

// List returns the owner's exams newest first, optionally filtered by a title substring.
func (s *ExamService) List(ctx context.Context, ownerID int64, search string) ([]model.ExamSummary, error) {
	exams, err := s.exams.ListSummaries(ctx, ownerID, search)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	if exams == nil {
		exams = []model.ExamSummary{}
	}
	return exams, nil
}
