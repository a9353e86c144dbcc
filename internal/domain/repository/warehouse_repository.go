package repository

import "github.com/tu-usuario/resto-inventario/internal/domain/entity"

// WarehouseRepository puerto de solo lectura sobre el catálogo de bodegas.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
}
