package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestClassification(t *testing.T) {
	dup := fmt.Errorf("create user: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	if !IsUniqueViolation(dup) {
		t.Error("wrapped 23505 not detected")
	}
	if ConstraintName(dup) != "idx_users_email" {
		t.Errorf("constraint = %q", ConstraintName(dup))
	}
	if !IsUniqueViolation(gorm.ErrDuplicatedKey) {
		t.Error("translated gorm error not detected")
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("23503 not detected")
	}
	if !IsExclusionViolation(&pgconn.PgError{Code: "23P01"}) {
		t.Error("23P01 not detected")
	}
	if IsUniqueViolation(errors.New("boom")) {
		t.Error("plain error misclassified")
	}
}
