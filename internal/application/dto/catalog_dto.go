package dto

// CatalogRequest entrada para crear o renombrar un valor de catálogo.
type CatalogRequest struct {
	Description string `json:"description" validate:"required,max=100"`
}

// CatalogResponse salida de un valor de catálogo.
type CatalogResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}
