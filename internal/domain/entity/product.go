package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product prenda del catálogo de producción. El código es único.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	BasePrice   decimal.Decimal
	ColorID     *string
	SizeID      *string
	CategoryID  *string
	FamilyID    *string
	LineID      *string
	MaterialIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
