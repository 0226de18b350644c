package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isForeignKeyViolation el registro sigue referenciado desde otra tabla (23503).
func isForeignKeyViolation(err error) bool {
	return hasCode(err, "23503")
}

// isNoRows la fila no existe. Un id que no es UUID (22P02) tampoco puede existir.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || hasCode(err, "22P02")
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}

// limitArg traduce limit <= 0 a NULL, que en PostgreSQL equivale a LIMIT ALL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func orderStatusArgs(statuses []entity.OrderStatus) []int32 {
	out := make([]int32, len(statuses))
	for i, s := range statuses {
		out[i] = int32(s)
	}
	return out
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
