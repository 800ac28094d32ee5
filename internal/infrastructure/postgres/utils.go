package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error PostgreSQL relevantes para el dominio.
const (
	codeUniqueViolation     = "23505" // unique_violation
	codeForeignKeyViolation = "23503" // foreign_key_violation
	codeLockNotAvailable    = "55P03" // lock_not_available (lock_timeout)
	codeQueryCanceled       = "57014" // query_canceled (statement_timeout)
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación referencial.
func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == codeForeignKeyViolation
}

// isLockTimeout verifica si un error proviene de una espera de bloqueo
// agotada (lock_timeout o cancelación del statement mientras esperaba).
func isLockTimeout(err error) bool {
	code := pgErrorCode(err)
	return code == codeLockNotAvailable || code == codeQueryCanceled
}
