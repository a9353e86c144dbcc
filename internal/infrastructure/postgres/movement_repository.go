package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, warehouse_id, type, quantity, reference_id,
	source_warehouse_id, destination_warehouse_id, handled_by, notes, created_at`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only; seq preserva el orden de inserción.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append persiste una entrada del libro; asigna ID si viene vacío.
func (r *MovementRepo) Append(movement *entity.MovementEntry) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, type, quantity, reference_id,
			source_warehouse_id, destination_warehouse_id, handled_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.WarehouseID, string(movement.Type),
		movement.Quantity, movement.ReferenceID,
		nullable(movement.SourceWarehouseID), nullable(movement.DestinationWarehouseID),
		nullable(movement.HandledBy), nullable(movement.Notes), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *MovementRepo) GetByID(id string) (*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByRecord devuelve las entradas de un (producto, bodega) en orden de inserción.
func (r *MovementRepo) ListByRecord(productID, warehouseID string) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1 AND warehouse_id = $2
		ORDER BY seq ASC`
	rows, err := r.q.Query(context.Background(), query, productID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list by record: %w", err)
	}
	return collectMovements(rows)
}

// ListByWarehouse lista movimientos de una bodega en un rango de fechas.
func (r *MovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE warehouse_id = $1`
	args := []any{warehouseID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by warehouse: %w", err)
	}
	return collectMovements(rows)
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	return collectMovements(rows)
}

// SumByRecord suma con signo todas las entradas de un (producto, bodega).
func (r *MovementRepo) SumByRecord(productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_movements WHERE product_id = $1 AND warehouse_id = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum by record: %w", err)
	}
	return sum, nil
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", len(args)+1)
		args = append(args, *to)
	}
	return query, args
}

func scanMovement(row pgx.Row) (*entity.MovementEntry, error) {
	var m entity.MovementEntry
	var movType string
	var source, dest, handledBy, notes *string
	err := row.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &movType, &m.Quantity, &m.ReferenceID,
		&source, &dest, &handledBy, &notes, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	m.SourceWarehouseID = deref(source)
	m.DestinationWarehouseID = deref(dest)
	m.HandledBy = deref(handledBy)
	m.Notes = deref(notes)
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.MovementEntry, error) {
	defer rows.Close()
	var list []*entity.MovementEntry
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
