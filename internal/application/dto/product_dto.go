package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto.
type ProductRequest struct {
	Code        string          `json:"code" validate:"required,max=50"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ColorID     *string         `json:"color_id"`
	SizeID      *string         `json:"size_id"`
	CategoryID  *string         `json:"category_id"`
	FamilyID    *string         `json:"family_id"`
	LineID      *string         `json:"line_id"`
	MaterialIDs []string        `json:"material_ids"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	ColorID     *string         `json:"color_id,omitempty"`
	SizeID      *string         `json:"size_id,omitempty"`
	CategoryID  *string         `json:"category_id,omitempty"`
	FamilyID    *string         `json:"family_id,omitempty"`
	LineID      *string         `json:"line_id,omitempty"`
	MaterialIDs []string        `json:"material_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
