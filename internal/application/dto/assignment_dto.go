package dto

import "time"

// CreateAssignmentRequest asigna una tarea sobre un producto a un usuario.
type CreateAssignmentRequest struct {
	UserID    string     `json:"user_id" validate:"required,uuid"`
	ProductID string     `json:"product_id" validate:"required,uuid"`
	TaskID    string     `json:"task_id" validate:"required,uuid"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
}

// BulkAssignmentRequest producto cartesiano usuarios × productos × tareas.
type BulkAssignmentRequest struct {
	UserIDs    []string   `json:"user_ids" validate:"required,min=1"`
	ProductIDs []string   `json:"product_ids" validate:"required,min=1"`
	TaskIDs    []string   `json:"task_ids" validate:"required,min=1"`
	StartAt    *time.Time `json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
}

// BulkAssignmentResponse resultado de la asignación masiva.
type BulkAssignmentResponse struct {
	Created    int      `json:"created"`
	Skipped    int      `json:"skipped"`
	CreatedIDs []string `json:"created_ids"`
}

// ChangeAssignmentStatusRequest cambio de estado genérico.
type ChangeAssignmentStatusRequest struct {
	Status int `json:"status" validate:"required,min=1,max=5"`
}

// AssignmentResponse proyección de una asignación.
type AssignmentResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	UserName        string     `json:"user_name,omitempty"`
	ProductID       string     `json:"product_id"`
	ProductName     string     `json:"product_name,omitempty"`
	TaskID          string     `json:"task_id"`
	TaskName        string     `json:"task_name,omitempty"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	Status          int        `json:"status"`
	StatusLabel     string     `json:"status_label"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
	IsOverdue       bool       `json:"is_overdue"`
}

// AssignmentListResponse lista paginada de asignaciones.
type AssignmentListResponse struct {
	Items []AssignmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
