package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el contador de stock
// por (producto, bodega). Los métodos *ForUpdate se usan dentro de transacciones
// para garantizar consistencia (SELECT FOR UPDATE).
type StockRepository interface {
	// Get devuelve el registro o nil si no existe (sin crear).
	Get(productID, warehouseID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila; si no existe devuelve un registro en cero listo
	// para creación perezosa vía Upsert.
	GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	// ListAvailableByProductForUpdate devuelve los registros con stock > 0 de un
	// producto en toda la red, bloqueados, ordenados por stock descendente y
	// desempate por bodega ascendente (orden estable para el planificador).
	ListAvailableByProductForUpdate(productID string) ([]*entity.StockRecord, error)
	// StockByProducts devuelve productID → stock disponible. warehouseID vacío
	// agrega toda la red. Productos sin ningún registro no aparecen en el mapa.
	StockByProducts(productIDs []string, warehouseID string) (map[string]decimal.Decimal, error)
	// ListBelowMin lista registros con stock bajo su umbral de reorden.
	ListBelowMin(limit, offset int) ([]*entity.StockRecord, error)
}
