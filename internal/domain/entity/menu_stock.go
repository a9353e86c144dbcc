package entity

import "time"

// MenuStock stock derivado de un ítem de menú en una bodega.
// CalculatedStock lo produce el recálculo de recetas; ManualStock es un override
// del operador. Es un valor eventual-consistente, nunca fuente de verdad.
type MenuStock struct {
	MenuItemID      string
	WarehouseID     string
	CalculatedStock int64
	ManualStock     *int64
	UpdatedAt       time.Time
}

// EffectiveStock devuelve ManualStock si está definido, si no CalculatedStock.
func (m *MenuStock) EffectiveStock() int64 {
	if m.ManualStock != nil {
		return *m.ManualStock
	}
	return m.CalculatedStock
}
