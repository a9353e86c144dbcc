package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

var _ repository.MenuStockRepository = (*MenuStockRepo)(nil)

// MenuStockRepo persistencia del stock derivado de menú sobre PostgreSQL.
type MenuStockRepo struct {
	q Querier
}

// NewMenuStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuStockRepository(q Querier) *MenuStockRepo {
	return &MenuStockRepo{q: q}
}

// Get obtiene el registro o nil si no existe.
func (r *MenuStockRepo) Get(menuItemID, warehouseID string) (*entity.MenuStock, error) {
	query := `
		SELECT menu_item_id, warehouse_id, calculated_stock, manual_stock, updated_at
		FROM menu_stock WHERE menu_item_id = $1 AND warehouse_id = $2`
	var m entity.MenuStock
	err := r.q.QueryRow(context.Background(), query, menuItemID, warehouseID).Scan(
		&m.MenuItemID, &m.WarehouseID, &m.CalculatedStock, &m.ManualStock, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get menu stock: %w", err)
	}
	return &m, nil
}

// Upsert inserta o actualiza el stock derivado, preservando el valor manual tal
// como viene en la entidad (nil limpia el override).
func (r *MenuStockRepo) Upsert(stock *entity.MenuStock) error {
	query := `
		INSERT INTO menu_stock (menu_item_id, warehouse_id, calculated_stock, manual_stock, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (menu_item_id, warehouse_id)
		DO UPDATE SET calculated_stock = EXCLUDED.calculated_stock, manual_stock = EXCLUDED.manual_stock, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.MenuItemID, stock.WarehouseID, stock.CalculatedStock, stock.ManualStock)
	if err != nil {
		return fmt.Errorf("upsert menu stock: %w", err)
	}
	return nil
}
