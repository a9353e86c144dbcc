package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/inventory/movements.
type RecordMovementRequest struct {
	ProductID              string          `json:"product_id"`
	Type                   string          `json:"type"` // in | out | adjustment | transfer
	Quantity               decimal.Decimal `json:"quantity"`
	SourceWarehouseID      string          `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string          `json:"destination_warehouse_id,omitempty"`
	ReferenceID            string          `json:"reference_id,omitempty"`
	Notes                  string          `json:"notes,omitempty"`
	AllowNegative          bool            `json:"allow_negative,omitempty"`
}

// StockRecordDTO contador de stock de un (producto, bodega).
type StockRecordDTO struct {
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MovementEntryDTO una entrada del libro de movimientos.
type MovementEntryDTO struct {
	ID                     string          `json:"id"`
	ProductID              string          `json:"product_id"`
	WarehouseID            string          `json:"warehouse_id"`
	Type                   string          `json:"type"`
	Quantity               decimal.Decimal `json:"quantity"`
	ReferenceID            string          `json:"reference_id"`
	SourceWarehouseID      string          `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string          `json:"destination_warehouse_id,omitempty"`
	HandledBy              string          `json:"handled_by"`
	Notes                  string          `json:"notes,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// SeedStockItemRequest un renglón de carga inicial de stock.
type SeedStockItemRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// SeedStockRequest body para POST /api/inventory/seed.
type SeedStockRequest struct {
	Items []SeedStockItemRequest `json:"items"`
}

// SeedReportDTO conteo de renglones del lote de carga inicial.
type SeedReportDTO struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// StockRecordToDTO mapea la entidad al DTO de respuesta.
func StockRecordToDTO(r *entity.StockRecord) StockRecordDTO {
	return StockRecordDTO{
		ProductID:    r.ProductID,
		WarehouseID:  r.WarehouseID,
		CurrentStock: r.CurrentStock,
		MinStock:     r.MinStock,
		UpdatedAt:    r.UpdatedAt,
	}
}

// MovementEntryToDTO mapea la entidad al DTO de respuesta.
func MovementEntryToDTO(m *entity.MovementEntry) MovementEntryDTO {
	return MovementEntryDTO{
		ID:                     m.ID,
		ProductID:              m.ProductID,
		WarehouseID:            m.WarehouseID,
		Type:                   string(m.Type),
		Quantity:               m.Quantity,
		ReferenceID:            m.ReferenceID,
		SourceWarehouseID:      m.SourceWarehouseID,
		DestinationWarehouseID: m.DestinationWarehouseID,
		HandledBy:              m.HandledBy,
		Notes:                  m.Notes,
		CreatedAt:              m.CreatedAt,
	}
}
