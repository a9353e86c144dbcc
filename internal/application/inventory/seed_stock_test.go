package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/resto-inventario/internal/application/inventory"
	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/pkg/logger"
)

func newSeedUC(env *testEnv) *inventory.SeedStockUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return inventory.NewSeedStockUseCase(env.txRunner, env.products, env.warehouses, fastRetryOpts(), log)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SeedInitialStock — carga inicial por lote
// ──────────────────────────────────────────────────────────────────────────────

func TestSeedInitialStock_CargaLoteCompleto(t *testing.T) {
	env := newTestEnv()
	uc := newSeedUC(env)

	report, err := uc.SeedInitialStock(context.Background(), "admin", []inventory.SeedItemInput{
		{ProductID: "p1", WarehouseID: "wh-a", Quantity: dec(100), MinStock: dec(20)},
		{ProductID: "p2", WarehouseID: "wh-a", Quantity: dec(50), MinStock: dec(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Zero(t, report.Failed)
	assert.True(t, env.currentStock("p1", "wh-a").Equal(dec(100)))

	rec, _ := env.stock.Get("p1", "wh-a")
	assert.True(t, rec.MinStock.Equal(dec(20)), "la carga inicial fija el umbral de reorden")

	entries, _ := env.mov.ListByRecord("p1", "wh-a")
	require.Len(t, entries, 1, "la carga inicial también pasa por el libro")
	assert.Equal(t, "initial-stock", entries[0].ReferenceID)
	assert.Equal(t, "admin", entries[0].HandledBy)
}

// Un renglón inválido se cuenta como fallido sin abortar el resto del lote.
func TestSeedInitialStock_RenglonFallidoNoAbortaElLote(t *testing.T) {
	env := newTestEnv()
	uc := newSeedUC(env)

	report, err := uc.SeedInitialStock(context.Background(), "admin", []inventory.SeedItemInput{
		{ProductID: "p1", WarehouseID: "wh-a", Quantity: dec(100)},
		{ProductID: "producto-fantasma", WarehouseID: "wh-a", Quantity: dec(10)},
		{ProductID: "p2", WarehouseID: "wh-a", Quantity: decimal.Zero}, // cantidad no positiva
		{ProductID: "p3", WarehouseID: "wh-b", Quantity: dec(30)},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 2, report.Failed)
	assert.True(t, env.currentStock("p1", "wh-a").Equal(dec(100)))
	assert.True(t, env.currentStock("p3", "wh-b").Equal(dec(30)))
	assert.True(t, env.currentStock("p2", "wh-a").IsZero())
}

func TestSeedInitialStock_LoteVacio(t *testing.T) {
	env := newTestEnv()
	uc := newSeedUC(env)

	_, err := uc.SeedInitialStock(context.Background(), "admin", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
