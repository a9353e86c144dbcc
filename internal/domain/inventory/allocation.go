package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// CandidateStock disponibilidad de un producto en una bodega candidata a origen.
type CandidateStock struct {
	WarehouseID  string
	CurrentStock decimal.Decimal
}

// PlannedTransfer un traslado individual dentro de un plan de asignación.
type PlannedTransfer struct {
	SourceWarehouseID      string
	DestinationWarehouseID string
	Quantity               decimal.Decimal
}

// TransferPlan plan de asignación para un ítem de requisición (efímero, no se persiste).
// Lo consume de inmediato el registrador de movimientos dentro de la misma transacción.
type TransferPlan struct {
	Requested      decimal.Decimal
	Fulfilled      decimal.Decimal
	TotalAvailable decimal.Decimal
	Transfers      []PlannedTransfer
	Status         string // entity.FulfillmentStatus*
}

// BuildTransferPlan construye el plan de traslados para cubrir una demanda en la
// bodega destino (servicio de dominio, puro y determinista).
//
// Estrategia voraz: candidatas ordenadas por stock descendente, desempate por ID de
// bodega ascendente. El stock que ya está en la bodega destino cuenta como cubierto
// sin emitir traslado (llevar stock de una bodega a sí misma es un no-op). Se drena
// cada candidata con min(restante, stock) hasta cubrir la demanda o agotar la red.
func BuildTransferPlan(destinationWarehouseID string, requested decimal.Decimal, candidates []CandidateStock) TransferPlan {
	plan := TransferPlan{
		Requested:      requested,
		Fulfilled:      decimal.Zero,
		TotalAvailable: decimal.Zero,
	}
	for _, c := range candidates {
		if c.CurrentStock.GreaterThan(decimal.Zero) {
			plan.TotalAvailable = plan.TotalAvailable.Add(c.CurrentStock)
		}
	}

	sorted := make([]CandidateStock, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CurrentStock.Equal(sorted[j].CurrentStock) {
			return sorted[i].CurrentStock.GreaterThan(sorted[j].CurrentStock)
		}
		return sorted[i].WarehouseID < sorted[j].WarehouseID
	})

	// Atajo: si el destino ya tiene la cantidad pedida no se emite ningún traslado.
	for _, c := range sorted {
		if c.WarehouseID == destinationWarehouseID && c.CurrentStock.GreaterThanOrEqual(requested) {
			plan.Fulfilled = requested
			plan.Status = entity.FulfillmentStatusFulfilled
			return plan
		}
	}

	remaining := requested
	for _, c := range sorted {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		if c.CurrentStock.LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, c.CurrentStock)
		if c.WarehouseID == destinationWarehouseID {
			// Lo que ya está en destino cuenta sin traslado.
			plan.Fulfilled = plan.Fulfilled.Add(take)
			remaining = remaining.Sub(take)
			continue
		}
		plan.Transfers = append(plan.Transfers, PlannedTransfer{
			SourceWarehouseID:      c.WarehouseID,
			DestinationWarehouseID: destinationWarehouseID,
			Quantity:               take,
		})
		plan.Fulfilled = plan.Fulfilled.Add(take)
		remaining = remaining.Sub(take)
	}

	plan.Status = classifyFulfillment(plan.Requested, plan.Fulfilled)
	return plan
}

// classifyFulfillment clasifica un ítem según lo cubierto frente a lo pedido.
func classifyFulfillment(requested, fulfilled decimal.Decimal) string {
	switch {
	case fulfilled.GreaterThanOrEqual(requested):
		return entity.FulfillmentStatusFulfilled
	case fulfilled.GreaterThan(decimal.Zero):
		return entity.FulfillmentStatusPartial
	default:
		return entity.FulfillmentStatusUnavailable
	}
}

// AggregateStatus combina estados por ítem en el estado de la requisición:
// todos cubiertos → FULFILLED, ninguno → UNAVAILABLE, mezcla → PARTIAL.
func AggregateStatus(itemStatuses []string) string {
	if len(itemStatuses) == 0 {
		return entity.FulfillmentStatusUnavailable
	}
	allFulfilled := true
	allUnavailable := true
	for _, s := range itemStatuses {
		if s != entity.FulfillmentStatusFulfilled {
			allFulfilled = false
		}
		if s != entity.FulfillmentStatusUnavailable {
			allUnavailable = false
		}
	}
	switch {
	case allFulfilled:
		return entity.FulfillmentStatusFulfilled
	case allUnavailable:
		return entity.FulfillmentStatusUnavailable
	default:
		return entity.FulfillmentStatusPartial
	}
}
