package repository

import (
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/aluworks-api/pkg/apperror"
)

// PostgreSQL integrity constraint error codes
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
	PgErrCheckViolation      = "23514"
	PgErrNotNullViolation    = "23502"
)

// translate maps constraint violations to client errors; other errors pass through
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	log.Printf("Database constraint %s on %s: %s", pgErr.Code, pgErr.TableName, pgErr.Message)
	switch pgErr.Code {
	case PgErrUniqueViolation:
		return apperror.NewConflictError("A record with the same " + constraintField(pgErr) + " already exists")
	case PgErrForeignKeyViolation:
		return apperror.NewFieldError(constraintField(pgErr), "references a record that does not exist")
	case PgErrCheckViolation, PgErrNotNullViolation:
		return apperror.NewFieldError(constraintField(pgErr), "is invalid")
	default:
		return err
	}
}

func constraintField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return "value"
}
