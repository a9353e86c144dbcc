package repository

import "github.com/tu-usuario/resto-inventario/internal/domain/entity"

// MenuStockRepository puerto de persistencia del stock derivado de menú.
type MenuStockRepository interface {
	// Get devuelve el registro o nil si no existe.
	Get(menuItemID, warehouseID string) (*entity.MenuStock, error)
	Upsert(stock *entity.MenuStock) error
}
