package assignments

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// TxRunner ejecuta fn con el repositorio de asignaciones atado a una transacción.
// Si fn devuelve error no queda ninguna fila escrita.
type TxRunner interface {
	RunAssignments(ctx context.Context, fn func(assignmentRepo repository.TaskAssignmentRepository) error) error
}
