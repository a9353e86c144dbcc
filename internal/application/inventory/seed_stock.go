package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
	"github.com/tu-usuario/resto-inventario/pkg/logger"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

// Referencia de negocio para los movimientos de carga inicial.
const seedReferenceID = "initial-stock"

// SeedStockUseCase carga el stock inicial de una lista de (producto, bodega).
// Operación batch: cada renglón se aísla en su propia transacción; un renglón
// fallido se registra y se cuenta sin abortar el resto del lote.
type SeedStockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	retryOpts     retry.Options
	log           *logger.Logger
}

// NewSeedStockUseCase construye el caso de uso.
func NewSeedStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	retryOpts retry.Options,
	log *logger.Logger,
) *SeedStockUseCase {
	return &SeedStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		retryOpts:     retryOpts,
		log:           log,
	}
}

// SeedItemInput un renglón de carga inicial.
type SeedItemInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	MinStock    decimal.Decimal
}

// SeedReport conteo de renglones cargados y fallidos del lote.
type SeedReport struct {
	Succeeded int
	Failed    int
}

// SeedInitialStock procesa el lote renglón a renglón. Devuelve el reporte de
// éxitos/fallos; solo retorna error ante un lote vacío.
func (uc *SeedStockUseCase) SeedInitialStock(ctx context.Context, handledBy string, items []SeedItemInput) (*SeedReport, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	report := &SeedReport{}
	for _, item := range items {
		if err := uc.seedItem(ctx, handledBy, item); err != nil {
			uc.log.Warn().
				Err(err).
				Str("product_id", item.ProductID).
				Str("warehouse_id", item.WarehouseID).
				Msg("renglón de carga inicial fallido")
			report.Failed++
			continue
		}
		report.Succeeded++
	}
	uc.log.Info().
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("carga inicial de stock completada")
	return report, nil
}

// seedItem acredita un renglón y fija su umbral de reorden en una transacción propia.
func (uc *SeedStockUseCase) seedItem(ctx context.Context, handledBy string, item SeedItemInput) error {
	if item.ProductID == "" || item.WarehouseID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(item.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(item.WarehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return retry.Do(ctx, uc.retryOpts, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			_ repository.RequisitionRepository,
		) error {
			record, err := stockRepo.GetForUpdate(item.ProductID, item.WarehouseID)
			if err != nil {
				return err
			}
			record.CurrentStock = record.CurrentStock.Add(item.Quantity)
			record.MinStock = item.MinStock
			record.UpdatedAt = now
			if err := stockRepo.Upsert(record); err != nil {
				return err
			}
			return movRepo.Append(&entity.MovementEntry{
				ProductID:   item.ProductID,
				WarehouseID: item.WarehouseID,
				Type:        entity.MovementTypeIn,
				Quantity:    item.Quantity,
				ReferenceID: seedReferenceID,
				HandledBy:   handledBy,
				CreatedAt:   now,
			})
		})
	})
}
