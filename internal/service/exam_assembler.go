package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/stemsi/qbank-backend/internal/model"
)

// ExamAssembler turns a raw selection into an ExamCandidate scoped to the
// requesting owner's questions. It never writes.
type ExamAssembler struct {
	catalog QuestionCatalog
}

// NewExamAssembler creates a new ExamAssembler.
func NewExamAssembler(catalog QuestionCatalog) *ExamAssembler {
	return &ExamAssembler{catalog: catalog}
}

// Assemble validates title and selection. Duplicate ids collapse to one, and ids
// that are not in the owner's catalog are dropped without an error.
func (a *ExamAssembler) Assemble(ctx context.Context, ownerID int64, title string, requested []int64) (*model.ExamCandidate, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "empty title")
	}
	if len(requested) == 0 {
		return nil, invalid("question_ids", "no questions selected")
	}

	owned, err := a.catalog.ListByOwner(ctx, ownerID, model.QuestionFilter{})
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	index := make(map[int64]model.Question, len(owned))
	for _, q := range owned {
		index[q.ID] = q
	}

	selected := make(map[int64]struct{}, len(requested))
	for _, id := range requested {
		if _, ok := index[id]; ok {
			selected[id] = struct{}{}
		}
	}
	if len(selected) == 0 {
		return nil, invalid("question_ids", "no valid questions")
	}

	ids := make([]int64, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	questions := make([]model.Question, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, index[id])
	}
	model.SortForPaper(questions)

	return &model.ExamCandidate{
		OwnerID:     ownerID,
		Title:       title,
		QuestionIDs: ids,
		Questions:   questions,
	}, nil
}
