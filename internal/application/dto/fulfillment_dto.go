package dto

import "github.com/shopspring/decimal"

// FulfillmentItemRequest un renglón de la requisición a cubrir.
type FulfillmentItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// FulfillmentRequest body para POST /api/requisitions/:id/fulfillment.
type FulfillmentRequest struct {
	DestinationWarehouseID string                   `json:"destination_warehouse_id"`
	Items                  []FulfillmentItemRequest `json:"items"`
}

// TransferDTO un traslado individual ejecutado por el planificador.
type TransferDTO struct {
	SourceWarehouseID      string          `json:"source_warehouse_id"`
	DestinationWarehouseID string          `json:"destination_warehouse_id"`
	Quantity               decimal.Decimal `json:"quantity"`
}

// FulfillmentItemResultDTO resultado por renglón: pedido, cubierto, disponible
// en toda la red y los traslados ejecutados.
type FulfillmentItemResultDTO struct {
	ProductID      string          `json:"product_id"`
	Requested      decimal.Decimal `json:"requested"`
	Fulfilled      decimal.Decimal `json:"fulfilled"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	Status         string          `json:"status"` // FULFILLED | PARTIAL | UNAVAILABLE
	Transfers      []TransferDTO   `json:"transfers"`
}

// FulfillmentResultDTO resultado del pase completo de cumplimiento.
type FulfillmentResultDTO struct {
	RequestID      string                     `json:"request_id"`
	Status         string                     `json:"status"`
	FulfillmentPct float64                    `json:"fulfillment_pct"`
	Items          []FulfillmentItemResultDTO `json:"items"`
}
