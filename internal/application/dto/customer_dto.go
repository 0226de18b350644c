package dto

import "time"

// CreateCustomerRequest entrada para crear o actualizar un cliente.
type CreateCustomerRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	DocumentType   string `json:"document_type" validate:"required,oneof=CC NIT CE PAS"`
	DocumentNumber string `json:"document_number" validate:"required,max=30"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
