package repository

import "github.com/tu-usuario/resto-inventario/internal/domain/entity"

// RequisitionRepository puerto mínimo sobre requisiciones: este módulo solo
// actualiza el estado de cumplimiento dentro de la transacción de traslados.
type RequisitionRepository interface {
	GetByID(id string) (*entity.Requisition, error)
	UpdateStatus(id, status string, fulfillmentPct float64) error
}
