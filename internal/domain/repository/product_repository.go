package repository

import "github.com/tu-usuario/resto-inventario/internal/domain/entity"

// ProductRepository puerto de solo lectura sobre el catálogo de materias primas
// (el catálogo se administra fuera de este módulo).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
