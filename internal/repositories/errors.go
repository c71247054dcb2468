package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrReferenced is returned when deleting a row other rows still point at.
	ErrReferenced = errors.New("record is still referenced")
	// ErrMissingClient is returned when a write points at a client that no
	// longer exists.
	ErrMissingClient = errors.New("referenced client does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// uniqueViolation reports whether err is a unique constraint failure on constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
}

func foreignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// foreignKeyViolationOn narrows foreignKeyViolation to one constraint
func foreignKeyViolationOn(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return foreignKeyViolation(err) && errors.As(err, &pgErr) && pgErr.ConstraintName == constraint
}
