package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.TaskAssignmentRepository = (*TaskAssignmentRepo)(nil)

const assignmentSelect = `
	SELECT a.id, a.user_id, a.product_id, a.task_id, a.start_at, a.end_at, a.status,
	       COALESCE(NULLIF(u.full_name, ''), u.username, ''), COALESCE(p.name, ''), COALESCE(t.name, '')
	FROM task_assignments a
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN products p ON p.id = a.product_id
	LEFT JOIN tasks t ON t.id = a.task_id`

// Estados no terminales (Pendiente, En progreso, Pausada); coincide con el índice
// parcial ux_task_assignments_active.
const activeAssignmentStatuses = `(1, 2, 3)`

// TaskAssignmentRepo asignaciones de tareas (usable con pool o tx).
type TaskAssignmentRepo struct {
	q Querier
}

// NewTaskAssignmentRepository construye el adaptador.
func NewTaskAssignmentRepository(q Querier) *TaskAssignmentRepo {
	return &TaskAssignmentRepo{q: q}
}

// Create persiste la asignación. Una terna activa repetida choca con el índice parcial.
func (r *TaskAssignmentRepo) Create(ctx context.Context, a *entity.TaskAssignment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO task_assignments (id, user_id, product_id, task_id, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.ProductID, a.TaskID, a.StartAt, a.EndAt, int32(a.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario, producto o tarea inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert task assignment: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación con los nombres de usuario, producto y tarea.
func (r *TaskAssignmentRepo) GetByID(ctx context.Context, id string) (*entity.TaskAssignment, error) {
	a, err := scanAssignment(r.q.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task assignment: %w", err)
	}
	return a, nil
}

// List asignaciones por fecha de inicio; los campos vacíos del filtro no filtran.
func (r *TaskAssignmentRepo) List(ctx context.Context, f repository.AssignmentFilter) ([]*entity.TaskAssignment, error) {
	query := assignmentSelect + `
		WHERE ($1 = '' OR a.user_id::text = $1)
		  AND ($2 = '' OR a.product_id::text = $2)
		  AND ($3 = '' OR a.task_id::text = $3)
		  AND ($4 = 0 OR a.status = $4)
		ORDER BY a.start_at
		LIMIT $5 OFFSET $6`
	return queryAssignments(ctx, r.q, query, f.UserID, f.ProductID, f.TaskID, int32(f.Status), limitArg(f.Limit), f.Offset)
}

// UpdateStatus persiste estado y fecha de fin.
func (r *TaskAssignmentRepo) UpdateStatus(ctx context.Context, a *entity.TaskAssignment) error {
	cmd, err := r.q.Exec(ctx, `UPDATE task_assignments SET status = $2, end_at = $3 WHERE id = $1`,
		a.ID, int32(a.Status), a.EndAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update task assignment status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TaskAssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM task_assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task assignment: %w", err)
	}
	return nil
}

// ExistsActive indica si la terna ya tiene una asignación no terminal.
func (r *TaskAssignmentRepo) ExistsActive(ctx context.Context, key entity.AssignmentKey) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM task_assignments
			WHERE user_id = $1 AND product_id = $2 AND task_id = $3 AND status IN `+activeAssignmentStatuses+`
		)`, key.UserID, key.ProductID, key.TaskID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("assignment exists: %w", err)
	}
	return exists, nil
}

// CountActiveByTask asignaciones no terminales de la tarea.
func (r *TaskAssignmentRepo) CountActiveByTask(ctx context.Context, taskID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM task_assignments
		WHERE task_id = $1 AND status IN `+activeAssignmentStatuses, taskID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active assignments: %w", err)
	}
	return n, nil
}

func (r *TaskAssignmentRepo) CountsByProduct(ctx context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error) {
	return assignmentCountsByProduct(ctx, r.q, productIDs)
}

// assignmentCountsByProduct total, completadas y en progreso por producto.
// Los productos sin asignaciones no aparecen en el mapa.
func assignmentCountsByProduct(ctx context.Context, q Querier, productIDs []string) (map[string]entity.AssignmentCounts, error) {
	out := make(map[string]entity.AssignmentCounts, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := q.Query(ctx, `
		SELECT product_id::text,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 4),
		       COUNT(*) FILTER (WHERE status = 2)
		FROM task_assignments
		WHERE product_id::text = ANY($1::text[])
		GROUP BY product_id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("assignment counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var c entity.AssignmentCounts
		if err := rows.Scan(&id, &c.Total, &c.Completed, &c.InProgress); err != nil {
			return nil, fmt.Errorf("scan assignment counts: %w", err)
		}
		out[id] = c
	}
	return out, rows.Err()
}

func queryAssignments(ctx context.Context, q Querier, query string, args ...any) ([]*entity.TaskAssignment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list task assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.TaskAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanAssignment(row pgx.Row) (*entity.TaskAssignment, error) {
	var a entity.TaskAssignment
	var status int32
	if err := row.Scan(&a.ID, &a.UserID, &a.ProductID, &a.TaskID, &a.StartAt, &a.EndAt, &status,
		&a.UserName, &a.ProductName, &a.TaskName); err != nil {
		return nil, err
	}
	a.Status = entity.AssignmentStatus(status)
	return &a, nil
}
