package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/stemsi/qbank-backend/internal/database"
	"github.com/stemsi/qbank-backend/internal/model"
)

// questionColumns is shared by every query that returns full questions joined with their course.
var questionColumns = []string{
	"q.id", "q.owner_id", "q.course_id", "c.name", "q.topic", "q.question_text",
	"q.question_type", "q.marks",
	"COALESCE(q.option_a, '')", "COALESCE(q.option_b, '')",
	"COALESCE(q.option_c, '')", "COALESCE(q.option_d, '')",
	"COALESCE(q.correct_option, '')",
	"q.created_at", "q.updated_at",
}

// paperOrder is the presentation order of questions on a paper.
var paperOrder = []string{"c.name ASC", "q.topic ASC", "q.question_type ASC", "q.id ASC"}

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool database.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool database.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByOwner retrieves the owner's questions in paper order, narrowed by filter.
func (r *QuestionRepository) ListByOwner(ctx context.Context, ownerID int64, filter model.QuestionFilter) ([]model.Question, error) {
	query := squirrel.Select(questionColumns...).
		From("questions q").
		Join("courses c ON c.id = q.course_id").
		Where(squirrel.Eq{"q.owner_id": ownerID}).
		OrderBy(paperOrder...).
		PlaceholderFormat(squirrel.Dollar)

	if filter.CourseID > 0 {
		query = query.Where(squirrel.Eq{"q.course_id": filter.CourseID})
	}
	if topic := strings.TrimSpace(filter.Topic); topic != "" {
		query = query.Where("q.topic ILIKE ?", containsPattern(topic))
	}
	if filter.QuestionType != "" {
		query = query.Where(squirrel.Eq{"q.question_type": string(filter.QuestionType)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build question query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return collectQuestions(rows)
}

// GetByID retrieves a question by ID regardless of owner. Callers enforce ownership.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	sql, args, err := squirrel.Select(questionColumns...).
		From("questions q").
		Join("courses c ON c.id = q.course_id").
		Where(squirrel.Eq{"q.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build question query: %w", err)
	}

	q, err := scanQuestion(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, translate(err)
	}
	return q, nil
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	a, b, c, d := optionArgs(q)
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (owner_id, course_id, topic, question_text, question_type, marks,
		                        option_a, option_b, option_c, option_d, correct_option)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at, updated_at`,
		q.OwnerID, q.CourseID, q.Topic, q.QuestionText, string(q.QuestionType), q.Marks,
		a, b, c, d, nullIfEmpty(q.CorrectOption),
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
	return translate(err)
}

// Update rewrites an owned question. Missing or foreign questions yield ErrNotFound.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	a, b, c, d := optionArgs(q)
	err := r.pool.QueryRow(ctx,
		`UPDATE questions
		 SET course_id = $1, topic = $2, question_text = $3, question_type = $4, marks = $5,
		     option_a = $6, option_b = $7, option_c = $8, option_d = $9, correct_option = $10,
		     updated_at = NOW()
		 WHERE id = $11 AND owner_id = $12
		 RETURNING created_at, updated_at`,
		q.CourseID, q.Topic, q.QuestionText, string(q.QuestionType), q.Marks,
		a, b, c, d, nullIfEmpty(q.CorrectOption),
		q.ID, q.OwnerID,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
	return translate(err)
}

// Delete removes an owned question. A question linked to a saved exam yields ErrReferenced.
func (r *QuestionRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func optionArgs(q *model.Question) (a, b, c, d any) {
	if q.Options == nil {
		return nil, nil, nil, nil
	}
	return nullIfEmpty(q.Options.A), nullIfEmpty(q.Options.B), nullIfEmpty(q.Options.C), nullIfEmpty(q.Options.D)
}

func scanQuestion(row pgx.Row) (*model.Question, error) {
	var (
		q       model.Question
		qType   string
		options model.MCQOptions
	)
	err := row.Scan(&q.ID, &q.OwnerID, &q.CourseID, &q.CourseName, &q.Topic, &q.QuestionText,
		&qType, &q.Marks,
		&options.A, &options.B, &options.C, &options.D,
		&q.CorrectOption, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.QuestionType = model.QuestionType(qType)
	if q.QuestionType == model.QuestionTypeMCQ {
		q.Options = &options
	}
	q.ClearNonMCQFields()
	return &q, nil
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, rows.Err()
}
