package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro de movimientos
// (append-only; las entradas nunca se modifican ni se borran).
type MovementRepository interface {
	Append(movement *entity.MovementEntry) error
	GetByID(id string) (*entity.MovementEntry, error)
	// ListByRecord devuelve las entradas de un (producto, bodega) en orden de inserción.
	ListByRecord(productID, warehouseID string) ([]*entity.MovementEntry, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error)
	// SumByRecord suma con signo todas las entradas de un registro (verificación
	// del invariante del libro contra el contador materializado).
	SumByRecord(productID, warehouseID string) (decimal.Decimal, error)
}
