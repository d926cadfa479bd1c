package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation.
const uniqueViolationCode = "23505"

// isUniqueViolation reporta si err proviene de un índice único de Postgres;
// los repos lo traducen al error de dominio de duplicado que corresponda.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	// errores ya aplanados a texto por capas intermedias
	return strings.Contains(err.Error(), uniqueViolationCode)
}
