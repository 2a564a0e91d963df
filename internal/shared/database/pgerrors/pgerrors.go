// Package pgerrors classifies PostgreSQL errors surfaced through GORM.
package pgerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
)

func code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports a duplicate key error
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || code(err) == codeUniqueViolation
}

// IsForeignKeyViolation reports a row still referenced elsewhere
func IsForeignKeyViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || code(err) == codeForeignKeyViolation
}

// IsExclusionViolation reports an overlapping range rejected by an EXCLUDE constraint
func IsExclusionViolation(err error) bool {
	return code(err) == codeExclusionViolation
}

// ConstraintName returns the violated constraint, if known
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
