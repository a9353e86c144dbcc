package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo cerrado de movimiento de inventario.
type MovementType string

const (
	MovementTypeIn         MovementType = "in"         // entrada
	MovementTypeOut        MovementType = "out"        // salida
	MovementTypeAdjustment MovementType = "adjustment" // ajuste con signo
	MovementTypeTransfer   MovementType = "transfer"   // traslado entre bodegas
)

// IsValid indica si el tipo pertenece a la enumeración cerrada.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}

// StockRecord representa el contador de stock de un producto en una bodega.
// Clave única (ProductID, WarehouseID). Se crea perezosamente con el primer
// movimiento y nunca se elimina: su historial de movimientos es pista de auditoría.
// Invariante: CurrentStock == suma con signo de todos sus MovementEntry en orden.
type StockRecord struct {
	ProductID    string
	WarehouseID  string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal // umbral de reorden
	UpdatedAt    time.Time
}

// MovementEntry entrada inmutable del libro de movimientos de un StockRecord.
// Quantity lleva signo: positivo entrada/traslado-entrada, negativo salida/traslado-salida.
type MovementEntry struct {
	ID                     string
	ProductID              string
	WarehouseID            string
	Type                   MovementType
	Quantity               decimal.Decimal
	ReferenceID            string // evento de negocio que originó el movimiento
	SourceWarehouseID      string // solo transfer
	DestinationWarehouseID string // solo transfer
	HandledBy              string // actor que ejecutó la operación
	Notes                  string
	CreatedAt              time.Time
}
