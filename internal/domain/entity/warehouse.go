package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeCentral    = "central"    // bodega central
	WarehouseTypeDepartment = "department" // bodega de departamento/cocina
)

// Warehouse representa una bodega donde se almacena materia prima (multi-bodega).
// Catálogo de solo lectura para este módulo; su administración vive fuera del core.
type Warehouse struct {
	ID        string
	Code      string
	Name      string
	Type      string // central | department
	CreatedAt time.Time
	UpdatedAt time.Time
}
