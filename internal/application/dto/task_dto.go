package dto

// TaskRequest entrada para crear o actualizar una definición de tarea.
type TaskRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
	Comments    string `json:"comments"`
}

// TaskResponse salida de una definición de tarea.
type TaskResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Comments    string `json:"comments"`
}
