package entity

import (
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain/workflow"
)

// AssignmentStatus estado de una asignación de tarea.
type AssignmentStatus int

const (
	AssignmentPending    AssignmentStatus = 1
	AssignmentInProgress AssignmentStatus = 2
	AssignmentPaused     AssignmentStatus = 3
	AssignmentCompleted  AssignmentStatus = 4
	AssignmentCancelled  AssignmentStatus = 5
)

// AllAssignmentStatuses en orden numérico.
var AllAssignmentStatuses = []AssignmentStatus{
	AssignmentPending, AssignmentInProgress, AssignmentPaused, AssignmentCompleted, AssignmentCancelled,
}

var assignmentStatusLabels = map[AssignmentStatus]string{
	AssignmentPending:    "Pendiente",
	AssignmentInProgress: "En progreso",
	AssignmentPaused:     "Pausada",
	AssignmentCompleted:  "Completada",
	AssignmentCancelled:  "Cancelada",
}

// Label devuelve el nombre visible del estado.
func (s AssignmentStatus) Label() string {
	if l, ok := assignmentStatusLabels[s]; ok {
		return l
	}
	return "Desconocido"
}

// IsValid indica si el valor pertenece a la enumeración.
func (s AssignmentStatus) IsValid() bool {
	_, ok := assignmentStatusLabels[s]
	return ok
}

// La tabla es permisiva entre estados no terminales, incluido reaplicar el actual
// (pausar una asignación pausada); Completed y Cancelled son sumideros.
var assignmentMachine = func() *workflow.Machine[AssignmentStatus] {
	b := workflow.NewBuilder(AllAssignmentStatuses...).
		Terminal(AssignmentCompleted, AssignmentCancelled).
		AllowReentry()
	for _, from := range []AssignmentStatus{AssignmentPending, AssignmentInProgress, AssignmentPaused} {
		b.Allow(from, AllAssignmentStatuses...)
	}
	return b.Build()
}()

// CanTransitionAssignment valida el cambio de estado de una asignación.
func CanTransitionAssignment(current, target AssignmentStatus) bool {
	return assignmentMachine.CanTransition(current, target)
}

// IsTerminal Completed o Cancelled.
func (s AssignmentStatus) IsTerminal() bool {
	return assignmentMachine.IsTerminal(s)
}

// TaskAssignment asignación de una tarea sobre un producto a un usuario.
type TaskAssignment struct {
	ID          string
	UserID      string
	ProductID   string
	TaskID      string
	StartAt     time.Time
	EndAt       *time.Time
	Status      AssignmentStatus
	UserName    string // solo lectura (join)
	ProductName string // solo lectura (join)
	TaskName    string // solo lectura (join)
}

// Duration tiempo trabajado; nil si no hay fecha de fin.
func (a *TaskAssignment) Duration() *time.Duration {
	if a.EndAt == nil {
		return nil
	}
	d := a.EndAt.Sub(a.StartAt)
	return &d
}

// IsOverdue hay fecha de fin, ya pasó y la asignación no está Completada.
func (a *TaskAssignment) IsOverdue(now time.Time) bool {
	return a.EndAt != nil && now.After(*a.EndAt) && a.Status != AssignmentCompleted
}

// ApplyStatus cambia el estado validando la tabla. Al entrar en Completed sin
// fecha de fin registrada, la fija en now.
func (a *TaskAssignment) ApplyStatus(target AssignmentStatus, now time.Time) bool {
	if !CanTransitionAssignment(a.Status, target) {
		return false
	}
	a.Status = target
	if target == AssignmentCompleted && a.EndAt == nil {
		end := now
		a.EndAt = &end
	}
	return true
}

// AssignmentKey identifica la terna (usuario, producto, tarea).
type AssignmentKey struct {
	UserID    string
	ProductID string
	TaskID    string
}

// Key devuelve la terna de la asignación.
func (a *TaskAssignment) Key() AssignmentKey {
	return AssignmentKey{UserID: a.UserID, ProductID: a.ProductID, TaskID: a.TaskID}
}

// AssignmentCounts conteos de asignaciones de un producto por estado.
type AssignmentCounts struct {
	Total      int
	Completed  int
	InProgress int
}
