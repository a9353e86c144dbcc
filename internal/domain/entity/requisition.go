package entity

import "time"

// Estados de cumplimiento de una requisición (y de cada ítem).
const (
	FulfillmentStatusFulfilled   = "FULFILLED"   // todo lo pedido quedó cubierto
	FulfillmentStatusPartial     = "PARTIAL"     // cubierto en parte ("kurang")
	FulfillmentStatusUnavailable = "UNAVAILABLE" // nada disponible
)

// Requisition requisición interna de materia prima hacia una bodega destino.
// La creación/aprobación vive fuera del core; aquí solo se actualiza su estado
// de cumplimiento dentro de la misma transacción que ejecuta los traslados.
type Requisition struct {
	ID                     string
	DestinationWarehouseID string
	Status                 string
	FulfillmentPct         float64
	UpdatedAt              time.Time
}
