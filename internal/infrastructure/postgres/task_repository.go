package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, name, description, comments, created_at, updated_at`

// TaskRepo definiciones de tarea.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Description, t.Comments, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	return r.getOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

func (r *TaskRepo) GetByName(ctx context.Context, name string) (*entity.Task, error) {
	return r.getOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE lower(name) = lower($1)`, name)
}

func (r *TaskRepo) getOne(ctx context.Context, query string, arg any) (*entity.Task, error) {
	var t entity.Task
	err := r.q.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.Description, &t.Comments, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (r *TaskRepo) List(ctx context.Context, limit, offset int) ([]*entity.Task, error) {
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY name LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Comments, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	cmd, err := r.q.Exec(ctx, `UPDATE tasks SET name = $2, description = $3, comments = $4, updated_at = $5 WHERE id = $1`,
		t.ID, t.Name, t.Description, t.Comments, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete falla con ErrInUse si quedan asignaciones (incluso terminales) que la referencian.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
