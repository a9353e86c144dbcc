package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

// RecordMovementUseCase registra movimientos del libro de stock de forma
// transaccional (in, out, adjustment, transfer) con bloqueo de fila
// (SELECT FOR UPDATE) y reintento ante conflictos de escritura.
// No toca cachés derivados (MenuStock): solo el libro.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	retryOpts     retry.Options
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	retryOpts retry.Options,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		retryOpts:     retryOpts,
	}
}

// MovementInput entrada para registrar un movimiento.
// in → DestinationWarehouseID; out → SourceWarehouseID; transfer → ambos;
// adjustment → una sola bodega (destino o origen) y Quantity con signo.
// AllowNegative permite que un débito deje el contador en negativo; por defecto
// un débito sin stock suficiente se rechaza con ErrInsufficientStock.
type MovementInput struct {
	ProductID              string
	Type                   entity.MovementType
	Quantity               decimal.Decimal
	SourceWarehouseID      string
	DestinationWarehouseID string
	ReferenceID            string
	HandledBy              string
	Notes                  string
	AllowNegative          bool
}

// RecordMovement valida la entrada, abre una transacción y aplica el movimiento
// sobre uno o dos StockRecord, anexando una entrada al libro por cada lado.
// Ante conflicto transitorio la unidad de trabajo completa se reejecuta desde
// cero en una transacción nueva (releyendo el estado actual).
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) error {
	if err := uc.validate(input); err != nil {
		return err
	}
	if input.ReferenceID == "" {
		input.ReferenceID = uuid.New().String()
	}
	now := time.Now()

	return retry.Do(ctx, uc.retryOpts, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
			_ repository.RequisitionRepository,
		) error {
			switch input.Type {
			case entity.MovementTypeIn:
				return uc.doIn(movRepo, stockRepo, input, now)
			case entity.MovementTypeOut:
				return uc.doOut(movRepo, stockRepo, input, now)
			case entity.MovementTypeAdjustment:
				return uc.doAdjustment(movRepo, stockRepo, input, now)
			case entity.MovementTypeTransfer:
				return uc.doTransfer(movRepo, stockRepo, input, now)
			}
			return domain.ErrInvalidInput
		})
	})
}

// validate rechaza la entrada antes de cualquier escritura (nunca se reintenta).
func (uc *RecordMovementUseCase) validate(input MovementInput) error {
	if input.ProductID == "" || !input.Type.IsValid() {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeIn:
		if input.DestinationWarehouseID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeOut:
		if input.SourceWarehouseID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		if uc.adjustmentWarehouse(input) == "" || input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if input.SourceWarehouseID == "" || input.DestinationWarehouseID == "" ||
			input.SourceWarehouseID == input.DestinationWarehouseID ||
			!input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	for _, whID := range []string{input.SourceWarehouseID, input.DestinationWarehouseID} {
		if whID == "" {
			continue
		}
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

// adjustmentWarehouse bodega sobre la que aplica un ajuste (destino o, si no, origen).
func (uc *RecordMovementUseCase) adjustmentWarehouse(input MovementInput) string {
	if input.DestinationWarehouseID != "" {
		return input.DestinationWarehouseID
	}
	return input.SourceWarehouseID
}

// doIn acredita la bodega destino, creando el registro perezosamente si no existe.
func (uc *RecordMovementUseCase) doIn(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput, now time.Time,
) error {
	record, err := stockRepo.GetForUpdate(input.ProductID, input.DestinationWarehouseID)
	if err != nil {
		return err
	}
	record.CurrentStock = record.CurrentStock.Add(input.Quantity)
	record.UpdatedAt = now
	if err := stockRepo.Upsert(record); err != nil {
		return err
	}
	return movRepo.Append(&entity.MovementEntry{
		ProductID:   input.ProductID,
		WarehouseID: input.DestinationWarehouseID,
		Type:        entity.MovementTypeIn,
		Quantity:    input.Quantity,
		ReferenceID: input.ReferenceID,
		HandledBy:   input.HandledBy,
		Notes:       input.Notes,
		CreatedAt:   now,
	})
}

// doOut debita la bodega origen aplicando la política de stock negativo.
func (uc *RecordMovementUseCase) doOut(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput, now time.Time,
) error {
	record, err := stockRepo.GetForUpdate(input.ProductID, input.SourceWarehouseID)
	if err != nil {
		return err
	}
	if !input.AllowNegative && record.CurrentStock.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	record.CurrentStock = record.CurrentStock.Sub(input.Quantity)
	record.UpdatedAt = now
	if err := stockRepo.Upsert(record); err != nil {
		return err
	}
	return movRepo.Append(&entity.MovementEntry{
		ProductID:   input.ProductID,
		WarehouseID: input.SourceWarehouseID,
		Type:        entity.MovementTypeOut,
		Quantity:    input.Quantity.Neg(),
		ReferenceID: input.ReferenceID,
		HandledBy:   input.HandledBy,
		Notes:       input.Notes,
		CreatedAt:   now,
	})
}

// doAdjustment aplica una cantidad con signo sobre una sola bodega.
func (uc *RecordMovementUseCase) doAdjustment(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput, now time.Time,
) error {
	warehouseID := uc.adjustmentWarehouse(input)
	record, err := stockRepo.GetForUpdate(input.ProductID, warehouseID)
	if err != nil {
		return err
	}
	newStock := record.CurrentStock.Add(input.Quantity)
	if !input.AllowNegative && newStock.LessThan(decimal.Zero) {
		return domain.ErrInsufficientStock
	}
	record.CurrentStock = newStock
	record.UpdatedAt = now
	if err := stockRepo.Upsert(record); err != nil {
		return err
	}
	return movRepo.Append(&entity.MovementEntry{
		ProductID:   input.ProductID,
		WarehouseID: warehouseID,
		Type:        entity.MovementTypeAdjustment,
		Quantity:    input.Quantity,
		ReferenceID: input.ReferenceID,
		HandledBy:   input.HandledBy,
		Notes:       input.Notes,
		CreatedAt:   now,
	})
}

// doTransfer debita origen y acredita destino como una sola operación lógica,
// con una entrada del libro en cada lado referenciando a la otra bodega.
// Las filas se bloquean en orden estable de bodega para evitar interbloqueos.
func (uc *RecordMovementUseCase) doTransfer(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	input MovementInput, now time.Time,
) error {
	first, second := input.SourceWarehouseID, input.DestinationWarehouseID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entity.StockRecord, 2)
	for _, whID := range []string{first, second} {
		record, err := stockRepo.GetForUpdate(input.ProductID, whID)
		if err != nil {
			return err
		}
		locked[whID] = record
	}
	origin := locked[input.SourceWarehouseID]
	dest := locked[input.DestinationWarehouseID]

	if !input.AllowNegative && origin.CurrentStock.LessThan(input.Quantity) {
		return domain.ErrInsufficientStock
	}
	origin.CurrentStock = origin.CurrentStock.Sub(input.Quantity)
	dest.CurrentStock = dest.CurrentStock.Add(input.Quantity)
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := stockRepo.Upsert(origin); err != nil {
		return err
	}
	if err := stockRepo.Upsert(dest); err != nil {
		return err
	}

	outEntry, inEntry := transferEntries(
		input.ProductID, input.SourceWarehouseID, input.DestinationWarehouseID,
		input.Quantity, input.ReferenceID, input.HandledBy, input.Notes, now,
	)
	if err := movRepo.Append(outEntry); err != nil {
		return err
	}
	return movRepo.Append(inEntry)
}

// transferEntries construye el par de entradas (salida en origen, entrada en
// destino) de un traslado, ambas con la misma referencia.
func transferEntries(
	productID, sourceWarehouseID, destinationWarehouseID string,
	quantity decimal.Decimal,
	referenceID, handledBy, notes string,
	now time.Time,
) (outEntry, inEntry *entity.MovementEntry) {
	outEntry = &entity.MovementEntry{
		ProductID:              productID,
		WarehouseID:            sourceWarehouseID,
		Type:                   entity.MovementTypeTransfer,
		Quantity:               quantity.Neg(),
		ReferenceID:            referenceID,
		SourceWarehouseID:      sourceWarehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		HandledBy:              handledBy,
		Notes:                  notes,
		CreatedAt:              now,
	}
	inEntry = &entity.MovementEntry{
		ProductID:              productID,
		WarehouseID:            destinationWarehouseID,
		Type:                   entity.MovementTypeTransfer,
		Quantity:               quantity,
		ReferenceID:            referenceID,
		SourceWarehouseID:      sourceWarehouseID,
		DestinationWarehouseID: destinationWarehouseID,
		HandledBy:              handledBy,
		Notes:                  notes,
		CreatedAt:              now,
	}
	return outEntry, inEntry
}
