package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stemsi/qbank-backend/internal/database"
	"github.com/stemsi/qbank-backend/internal/model"
)

// ErrLinkMismatch means fewer exam_questions rows were written than requested,
// i.e. a selected question disappeared or changed owner before the save.
var ErrLinkMismatch = errors.New("exam question links do not match selection")

// ExamRepository handles exam paper data access.
type ExamRepository struct {
	pool database.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool database.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// Save writes the paper row and one link per question id in a single transaction.
// Links are only written for questions still owned by the candidate's owner; if any
// id is missing the whole unit of work is rolled back.
func (r *ExamRepository) Save(ctx context.Context, c *model.ExamCandidate) (*model.ExamPaper, error) {
	paper := &model.ExamPaper{OwnerID: c.OwnerID, Title: c.Title}

	err := database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO exam_papers (owner_id, title) VALUES ($1, $2) RETURNING id, created_at`,
			c.OwnerID, c.Title,
		).Scan(&paper.ID, &paper.CreatedAt); err != nil {
			return fmt.Errorf("insert exam paper: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`INSERT INTO exam_questions (exam_id, question_id)
			 SELECT $1, q.id FROM questions q
			 WHERE q.id = ANY($2) AND q.owner_id = $3`,
			paper.ID, c.QuestionIDs, c.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("insert exam questions: %w", err)
		}
		if tag.RowsAffected() != int64(len(c.QuestionIDs)) {
			return fmt.Errorf("%w: wrote %d of %d", ErrLinkMismatch, tag.RowsAffected(), len(c.QuestionIDs))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// GetForOwner retrieves a paper header. Missing and foreign papers both yield ErrNotFound.
func (r *ExamRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*model.ExamPaper, error) {
	p := &model.ExamPaper{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, created_at
		 FROM exam_papers WHERE id = $1 AND owner_id = $2`, id, ownerID,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// ListQuestions retrieves the questions linked to an exam, joined with their course, in paper order.
func (r *ExamRepository) ListQuestions(ctx context.Context, examID int64) ([]model.Question, error) {
	sql, args, err := squirrel.Select(questionColumns...).
		From("exam_questions eq").
		Join("questions q ON q.id = eq.question_id").
		Join("courses c ON c.id = q.course_id").
		Where(squirrel.Eq{"eq.exam_id": examID}).
		OrderBy(paperOrder...).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exam question query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

// Delete removes an owned paper and its links in one transaction, links first.
func (r *ExamRepository) Delete(ctx context.Context, id, ownerID int64) error {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM exam_papers WHERE id = $1 AND owner_id = $2 FOR UPDATE`,
			id, ownerID,
		).Scan(&lockedID)
		if err != nil {
			return translate(err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM exam_questions WHERE exam_id = $1`, id); err != nil {
			return fmt.Errorf("delete exam questions: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM exam_papers WHERE id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return fmt.Errorf("delete exam paper: %w", err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("delete exam paper: %d rows affected", tag.RowsAffected())
		}
		return nil
	})
}

// ListSummaries retrieves the owner's exams newest first with live question counts and
// mark totals. A non-blank search keeps only titles containing it, case-insensitively.
func (r *ExamRepository) ListSummaries(ctx context.Context, ownerID int64, search string) ([]model.ExamSummary, error) {
	query := squirrel.Select(
		"e.id", "e.title", "e.created_at",
		"COUNT(eq.question_id)", "COALESCE(SUM(q.marks), 0)",
	).
		From("exam_papers e").
		LeftJoin("exam_questions eq ON eq.exam_id = e.id").
		LeftJoin("questions q ON q.id = eq.question_id").
		Where(squirrel.Eq{"e.owner_id": ownerID}).
		GroupBy("e.id", "e.title", "e.created_at").
		OrderBy("e.created_at DESC", "e.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if s := strings.TrimSpace(search); s != "" {
		query = query.Where("e.title ILIKE ?", containsPattern(s))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build exam list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.ExamSummary
	for rows.Next() {
		var e model.ExamSummary
		if err := rows.Scan(&e.ID, &e.Title, &e.CreatedAt, &e.QuestionCount, &e.TotalMarks); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}
