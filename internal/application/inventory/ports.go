package inventory

import (
	"context"

	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que un pase completo de movimientos
// (y la actualización de la requisición) sea todo-o-nada: otros lectores nunca
// ven un commit parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		reqRepo repository.RequisitionRepository,
	) error) error
}
