package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches, including rows owned by someone else.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a delete is blocked by a foreign key.
	ErrReferenced = errors.New("record is still referenced")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto the repository sentinels. Other errors pass through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return errors.Join(ErrDuplicate, err)
		case pgForeignKeyViolation:
			return errors.Join(ErrReferenced, err)
		}
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// nullIfEmpty stores empty strings as NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
