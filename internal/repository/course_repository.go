package repository

import (
	"context"

	"github.com/stemsi/qbank-backend/internal/database"
	"github.com/stemsi/qbank-backend/internal/model"
)

type CourseRepository struct {
	pool database.Pool
}

func NewCourseRepository(pool database.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO courses (owner_id, name) VALUES ($1, $2) RETURNING id, created_at`,
		c.OwnerID, c.Name).Scan(&c.ID, &c.CreatedAt)
	return translate(err)
}

func (r *CourseRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, name, created_at FROM courses WHERE owner_id = $1 ORDER BY name ASC, id ASC`,
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ExistsForOwner reports whether courseID exists and belongs to ownerID.
func (r *CourseRepository) ExistsForOwner(ctx context.Context, ownerID, courseID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1 AND owner_id = $2)`,
		courseID, ownerID).Scan(&exists)
	return exists, err
}

// Delete removes an owned course. A course that still has questions yields ErrReferenced.
func (r *CourseRepository) Delete(ctx context.Context, ownerID, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
