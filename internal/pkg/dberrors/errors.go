package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError

	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
	NotNullViolation    = "23502"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	// Check if the error is a PgError, if the code is unique_violation (23505),
	// and if the constraint name matches the provided one.
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation && pgErr.ConstraintName == constraintName
}

// IsDuplicateKeyError checks if the error is any unique violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

// Translate converts constraint violations into field errors. fields maps
// constraint names to the JSON field they guard; unmapped constraints fall
// back to the column reported by the server, then to the constraint name.
// Errors that are not constraint violations are returned unchanged.
func Translate(err error, fields map[string]string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	field := fields[pgErr.ConstraintName]
	if field == "" {
		field = pgErr.ColumnName
	}
	if field == "" {
		field = pgErr.ConstraintName
	}

	switch pgErr.Code {
	case UniqueViolation:
		return apperrors.NewUniqueViolation(field, "")
	case ForeignKeyViolation:
		return apperrors.NewValidationError(field, "referenced record does not exist")
	case CheckViolation:
		return apperrors.NewValidationError(field, "value is out of the allowed range")
	case NotNullViolation:
		return apperrors.NewValidationError(field, "this field is required")
	default:
		return err
	}
}
