package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de PostgreSQL para violación de constraint único.
const codeUniqueViolation = "23505"

// isUniqueViolation detecta choques de unicidad (email de usuario repetido,
// ids duplicados) para que los repositorios los traduzcan a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
