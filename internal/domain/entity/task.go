package entity

import "time"

// Task definición de una tarea de producción (corte, confección, estampado...).
type Task struct {
	ID          string
	Name        string
	Description string
	Comments    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
