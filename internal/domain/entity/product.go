package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una materia prima del catálogo (solo lectura para este módulo).
type Product struct {
	ID                string
	SKU               string
	Name              string
	Unit              string // kg, l, und...
	Category          string
	MinRequisitionQty decimal.Decimal // cantidad mínima por requisición
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
