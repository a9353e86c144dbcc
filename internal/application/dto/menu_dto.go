package dto

import (
	"time"

	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// MenuStockDTO stock derivado de un ítem de menú en una bodega.
// EffectiveStock es el override manual si está definido, si no el calculado.
type MenuStockDTO struct {
	MenuItemID      string    `json:"menu_item_id"`
	WarehouseID     string    `json:"warehouse_id"`
	CalculatedStock int64     `json:"calculated_stock"`
	ManualStock     *int64    `json:"manual_stock,omitempty"`
	EffectiveStock  int64     `json:"effective_stock"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SetManualStockRequest body para PUT /api/menu-stock/:item/:warehouse/manual.
type SetManualStockRequest struct {
	ManualStock int64 `json:"manual_stock"`
}

// SweepReportDTO resultado de un barrido de recálculo.
type SweepReportDTO struct {
	Processed  int   `json:"processed"`
	Failed     int   `json:"failed"`
	DurationMs int64 `json:"duration_ms"`
}

// MenuStockToDTO mapea la entidad al DTO de respuesta.
func MenuStockToDTO(m *entity.MenuStock) MenuStockDTO {
	return MenuStockDTO{
		MenuItemID:      m.MenuItemID,
		WarehouseID:     m.WarehouseID,
		CalculatedStock: m.CalculatedStock,
		ManualStock:     m.ManualStock,
		EffectiveStock:  m.EffectiveStock(),
		UpdatedAt:       m.UpdatedAt,
	}
}
