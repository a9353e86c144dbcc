package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

var _ repository.RequisitionRepository = (*RequisitionRepo)(nil)

// RequisitionRepo acceso mínimo a requisiciones sobre PostgreSQL: el core solo
// lee la cabecera y actualiza el estado de cumplimiento dentro de la tx de traslados.
type RequisitionRepo struct {
	q Querier
}

// NewRequisitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequisitionRepository(q Querier) *RequisitionRepo {
	return &RequisitionRepo{q: q}
}

// GetByID obtiene la cabecera de una requisición o nil si no existe.
func (r *RequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	query := `
		SELECT id, destination_warehouse_id, status, fulfillment_pct, updated_at
		FROM requisitions WHERE id = $1`
	var req entity.Requisition
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.DestinationWarehouseID, &req.Status, &req.FulfillmentPct, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisition: %w", err)
	}
	return &req, nil
}

// UpdateStatus fija el estado de cumplimiento y el porcentaje cubierto.
func (r *RequisitionRepo) UpdateStatus(id, status string, fulfillmentPct float64) error {
	query := `
		UPDATE requisitions SET status = $2, fulfillment_pct = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, fulfillmentPct)
	if err != nil {
		return fmt.Errorf("update requisition status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
