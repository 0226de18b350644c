package dto

import "github.com/shopspring/decimal"

// MaterialRequest entrada para crear o actualizar un insumo.
type MaterialRequest struct {
	Name           string          `json:"name" validate:"required,max=150"`
	MaterialTypeID string          `json:"material_type_id" validate:"required,uuid"`
	Unit           string          `json:"unit" validate:"required"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	Stock          decimal.Decimal `json:"stock"`
}

// MaterialResponse salida de un insumo.
type MaterialResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	MaterialTypeID   string          `json:"material_type_id"`
	MaterialTypeName string          `json:"material_type_name,omitempty"`
	Unit             string          `json:"unit"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Stock            decimal.Decimal `json:"stock"`
}
