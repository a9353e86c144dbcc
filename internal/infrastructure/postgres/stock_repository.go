package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el registro de stock o nil si no existe.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, current_stock, min_stock, updated_at
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.CurrentStock, &s.MinStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Si el registro no existe
// devuelve uno en cero listo para creación perezosa vía Upsert.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, current_stock, min_stock, updated_at
		FROM stock_records WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.CurrentStock, &s.MinStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{
				ProductID:    productID,
				WarehouseID:  warehouseID,
				CurrentStock: decimal.Zero,
				MinStock:     decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el contador de stock (por producto y bodega).
// Los registros nunca se eliminan: son la cabecera de la pista de auditoría.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, warehouse_id, current_stock, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET current_stock = EXCLUDED.current_stock, min_stock = EXCLUDED.min_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseID, record.CurrentStock, record.MinStock)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// ListAvailableByProductForUpdate devuelve los registros con stock positivo de
// un producto en toda la red, bloqueados, en orden estable para el planificador
// (stock descendente, bodega ascendente como desempate determinista).
func (r *StockRepo) ListAvailableByProductForUpdate(productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, current_stock, min_stock, updated_at
		FROM stock_records
		WHERE product_id = $1 AND current_stock > 0
		ORDER BY current_stock DESC, warehouse_id ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list available stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.CurrentStock, &s.MinStock, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// StockByProducts devuelve productID → stock disponible. warehouseID vacío
// agrega toda la red; los productos sin registro no aparecen en el mapa.
func (r *StockRepo) StockByProducts(productIDs []string, warehouseID string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT product_id, SUM(current_stock)
		FROM stock_records WHERE product_id = ANY($1)`
	args := []any{productIDs}
	if warehouseID != "" {
		query += " AND warehouse_id = $2"
		args = append(args, warehouseID)
	}
	query += " GROUP BY product_id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("stock by products: %w", err)
	}
	defer rows.Close()
	out := make(map[string]decimal.Decimal, len(productIDs))
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan stock sum: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}

// ListBelowMin lista registros con stock bajo su umbral de reorden.
func (r *StockRepo) ListBelowMin(limit, offset int) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, current_stock, min_stock, updated_at
		FROM stock_records
		WHERE current_stock < min_stock
		ORDER BY product_id, warehouse_id
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list below min: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.CurrentStock, &s.MinStock, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
