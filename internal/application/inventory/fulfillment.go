package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/application/dto"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	domaininv "github.com/tu-usuario/resto-inventario/internal/domain/inventory"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

// FulfillmentUseCase cubre una requisición trasladando stock desde las bodegas
// con disponibilidad hacia la bodega destino. Todo el pase (traslados de todos
// los renglones más la actualización de estado de la requisición) se confirma
// como una sola transacción; un commit parcial nunca es visible.
type FulfillmentUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	retryOpts     retry.Options
}

// NewFulfillmentUseCase construye el caso de uso.
func NewFulfillmentUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	retryOpts retry.Options,
) *FulfillmentUseCase {
	return &FulfillmentUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		retryOpts:     retryOpts,
	}
}

// FulfillmentItemInput un renglón de la requisición: producto y cantidad pedida.
type FulfillmentItemInput struct {
	ProductID string
	Quantity  decimal.Decimal
}

// PlanAndExecuteFulfillment lee la disponibilidad por producto con bloqueo de
// fila, construye el plan voraz (mayor stock primero) y lo ejecuta dentro de la
// misma transacción, de modo que el plan nunca queda obsoleto al confirmar. Un
// conflicto de escritura detectado por el almacén reejecuta el pase completo
// desde cero contra el estado fresco.
func (uc *FulfillmentUseCase) PlanAndExecuteFulfillment(
	ctx context.Context,
	requestID string,
	destinationWarehouseID string,
	handledBy string,
	items []FulfillmentItemInput,
) (*dto.FulfillmentResultDTO, error) {
	if requestID == "" || destinationWarehouseID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	wh, err := uc.warehouseRepo.GetByID(destinationWarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	for _, it := range items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
	}

	var result *dto.FulfillmentResultDTO
	err = retry.Do(ctx, uc.retryOpts, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			reqRepo repository.RequisitionRepository,
		) error {
			res, err := uc.executePass(movRepo, stockRepo, reqRepo, requestID, destinationWarehouseID, handledBy, items)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// executePass ejecuta un intento completo del pase de cumplimiento dentro de
// una transacción ya abierta. Relee toda la disponibilidad en cada intento.
func (uc *FulfillmentUseCase) executePass(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	reqRepo repository.RequisitionRepository,
	requestID, destinationWarehouseID, handledBy string,
	items []FulfillmentItemInput,
) (*dto.FulfillmentResultDTO, error) {
	req, err := reqRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	result := &dto.FulfillmentResultDTO{
		RequestID: requestID,
		Items:     make([]dto.FulfillmentItemResultDTO, 0, len(items)),
	}
	statuses := make([]string, 0, len(items))
	requestedSum := decimal.Zero
	fulfilledSum := decimal.Zero

	for _, item := range items {
		records, err := stockRepo.ListAvailableByProductForUpdate(item.ProductID)
		if err != nil {
			return nil, err
		}
		recordByWh := make(map[string]*entity.StockRecord, len(records))
		candidates := make([]domaininv.CandidateStock, 0, len(records))
		for _, r := range records {
			recordByWh[r.WarehouseID] = r
			candidates = append(candidates, domaininv.CandidateStock{
				WarehouseID:  r.WarehouseID,
				CurrentStock: r.CurrentStock,
			})
		}

		plan := domaininv.BuildTransferPlan(destinationWarehouseID, item.Quantity, candidates)

		transfers := make([]dto.TransferDTO, 0, len(plan.Transfers))
		for _, t := range plan.Transfers {
			origin := recordByWh[t.SourceWarehouseID]
			origin.CurrentStock = origin.CurrentStock.Sub(t.Quantity)
			origin.UpdatedAt = now
			if err := stockRepo.Upsert(origin); err != nil {
				return nil, err
			}

			dest, ok := recordByWh[destinationWarehouseID]
			if !ok {
				// El destino puede no tener registro aún: creación perezosa bloqueada.
				dest, err = stockRepo.GetForUpdate(item.ProductID, destinationWarehouseID)
				if err != nil {
					return nil, err
				}
				recordByWh[destinationWarehouseID] = dest
			}
			dest.CurrentStock = dest.CurrentStock.Add(t.Quantity)
			dest.UpdatedAt = now
			if err := stockRepo.Upsert(dest); err != nil {
				return nil, err
			}

			outEntry, inEntry := transferEntries(
				item.ProductID, t.SourceWarehouseID, destinationWarehouseID,
				t.Quantity, requestID, handledBy, "", now,
			)
			if err := movRepo.Append(outEntry); err != nil {
				return nil, err
			}
			if err := movRepo.Append(inEntry); err != nil {
				return nil, err
			}
			transfers = append(transfers, dto.TransferDTO{
				SourceWarehouseID:      t.SourceWarehouseID,
				DestinationWarehouseID: destinationWarehouseID,
				Quantity:               t.Quantity,
			})
		}

		result.Items = append(result.Items, dto.FulfillmentItemResultDTO{
			ProductID:      item.ProductID,
			Requested:      plan.Requested,
			Fulfilled:      plan.Fulfilled,
			TotalAvailable: plan.TotalAvailable,
			Status:         plan.Status,
			Transfers:      transfers,
		})
		statuses = append(statuses, plan.Status)
		requestedSum = requestedSum.Add(plan.Requested)
		fulfilledSum = fulfilledSum.Add(plan.Fulfilled)
	}

	result.Status = domaininv.AggregateStatus(statuses)
	if requestedSum.GreaterThan(decimal.Zero) {
		pct, _ := fulfilledSum.Div(requestedSum).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		result.FulfillmentPct = pct
	}
	if err := reqRepo.UpdateStatus(requestID, result.Status, result.FulfillmentPct); err != nil {
		return nil, err
	}
	return result, nil
}
