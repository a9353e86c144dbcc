package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

// LedgerQueryUseCase lecturas del libro: historial de movimientos, stock bajo
// umbral y verificación del invariante contador == suma de movimientos. El
// historial es la fuente de verdad que el reporteo externo reproduce por su cuenta.
type LedgerQueryUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
}

// NewLedgerQueryUseCase construye el caso de uso sobre repos atados al pool.
func NewLedgerQueryUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository) *LedgerQueryUseCase {
	return &LedgerQueryUseCase{stockRepo: stockRepo, movRepo: movRepo}
}

// GetRecord devuelve el registro de stock de un (producto, bodega).
func (uc *LedgerQueryUseCase) GetRecord(ctx context.Context, productID, warehouseID string) (*entity.StockRecord, error) {
	record, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

// ListMovementsByProduct historial de un producto en un rango de fechas.
func (uc *LedgerQueryUseCase) ListMovementsByProduct(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// ListMovementsByWarehouse historial de una bodega en un rango de fechas.
func (uc *LedgerQueryUseCase) ListMovementsByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
}

// ListBelowMin registros con stock por debajo de su umbral de reorden.
func (uc *LedgerQueryUseCase) ListBelowMin(ctx context.Context, limit, offset int) ([]*entity.StockRecord, error) {
	return uc.stockRepo.ListBelowMin(limit, offset)
}

// VerifyRecord comprueba el invariante del libro: el contador materializado
// debe igualar la suma con signo de todas sus entradas en orden de inserción.
func (uc *LedgerQueryUseCase) VerifyRecord(ctx context.Context, productID, warehouseID string) (bool, error) {
	record, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, domain.ErrNotFound
	}
	sum, err := uc.movRepo.SumByRecord(productID, warehouseID)
	if err != nil {
		return false, err
	}
	return record.CurrentStock.Equal(sum), nil
}
