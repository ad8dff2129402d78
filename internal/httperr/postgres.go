package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgForeignKeyViolated = "23503"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == pgForeignKeyViolated
}

// Conflicting maps driver-level integrity errors onto ConstraintErrors.
// constraints maps a database constraint name to the exposed field.
// Errors that are not integrity violations are returned unchanged.
func Conflicting(err error, constraints map[string]string) error {
	pgErr, ok := pgError(err)
	if !ok {
		return err
	}

	field := constraints[pgErr.ConstraintName]
	if field == "" {
		field = "non_field_errors"
	}

	switch {
	case IsUniqueViolation(pgErr):
		return Constraint("duplicate", field, "Já existe um registro com este valor.")
	case IsForeignKeyViolation(pgErr):
		return Constraint("in_use", field, "Registro referenciado por outros dados.")
	}
	return err
}
