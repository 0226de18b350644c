package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material insumo (tela, hilo, botones...). El nombre es único.
type Material struct {
	ID               string
	Name             string
	MaterialTypeID   string
	MaterialTypeName string // solo lectura (join)
	Unit             string // metro, unidad, cono...
	UnitCost         decimal.Decimal
	Stock            decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
