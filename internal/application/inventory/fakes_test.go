package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
	"github.com/tu-usuario/resto-inventario/pkg/retry"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: las lecturas devuelven copias y
// las mutaciones solo quedan visibles vía Upsert/Append; el fakeTxRunner toma un
// snapshot antes de cada unidad de trabajo y lo restaura en caso de rollback,
// igual que haría una transacción real.
// ──────────────────────────────────────────────────────────────────────────────

var errTxConflict = errors.New("could not serialize access (simulado)")

func isTxConflict(err error) bool { return errors.Is(err, errTxConflict) }

func fastRetryOpts() retry.Options {
	return retry.Options{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		IsTransient: isTxConflict,
	}
}

// ── stock ─────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	records map[string]*entity.StockRecord
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{records: make(map[string]*entity.StockRecord)}
}

func stockKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func (r *fakeStockRepo) snapshot() map[string]*entity.StockRecord {
	snap := make(map[string]*entity.StockRecord, len(r.records))
	for k, v := range r.records {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *fakeStockRepo) restore(snap map[string]*entity.StockRecord) {
	r.records = snap
}

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	rec, ok := r.records[stockKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	rec, ok := r.records[stockKey(productID, warehouseID)]
	if !ok {
		return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID}, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeStockRepo) Upsert(record *entity.StockRecord) error {
	cp := *record
	r.records[stockKey(record.ProductID, record.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListAvailableByProductForUpdate(productID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if rec.ProductID == productID && rec.CurrentStock.GreaterThan(decimal.Zero) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CurrentStock.Equal(out[j].CurrentStock) {
			return out[i].CurrentStock.GreaterThan(out[j].CurrentStock)
		}
		return out[i].WarehouseID < out[j].WarehouseID
	})
	return out, nil
}

func (r *fakeStockRepo) StockByProducts(productIDs []string, warehouseID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, pid := range productIDs {
		for _, rec := range r.records {
			if rec.ProductID != pid {
				continue
			}
			if warehouseID != "" && rec.WarehouseID != warehouseID {
				continue
			}
			out[pid] = out[pid].Add(rec.CurrentStock)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListBelowMin(limit, offset int) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for _, rec := range r.records {
		if rec.CurrentStock.LessThan(rec.MinStock) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return stockKey(out[i].ProductID, out[i].WarehouseID) < stockKey(out[j].ProductID, out[j].WarehouseID)
	})
	return paginate(out, limit, offset), nil
}

// ── movimientos ───────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	entries []*entity.MovementEntry
	nextID  int
}

func newFakeMovementRepo() *fakeMovementRepo { return &fakeMovementRepo{} }

func (r *fakeMovementRepo) snapshot() []*entity.MovementEntry {
	snap := make([]*entity.MovementEntry, len(r.entries))
	copy(snap, r.entries)
	return snap
}

func (r *fakeMovementRepo) restore(snap []*entity.MovementEntry) {
	r.entries = snap
}

func (r *fakeMovementRepo) Append(movement *entity.MovementEntry) error {
	cp := *movement
	if cp.ID == "" {
		r.nextID++
		cp.ID = fmt.Sprintf("mov-%04d", r.nextID)
	}
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.MovementEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByRecord(productID, warehouseID string) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	for _, e := range r.entries {
		if e.ProductID == productID && e.WarehouseID == warehouseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	for _, e := range r.entries {
		if e.WarehouseID == warehouseID && inRange(e.CreatedAt, from, to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.MovementEntry, error) {
	var out []*entity.MovementEntry
	for _, e := range r.entries {
		if e.ProductID == productID && inRange(e.CreatedAt, from, to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeMovementRepo) SumByRecord(productID, warehouseID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.ProductID == productID && e.WarehouseID == warehouseID {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

// ── requisiciones ─────────────────────────────────────────────────────────────

type fakeRequisitionRepo struct {
	requisitions map[string]*entity.Requisition
}

func newFakeRequisitionRepo() *fakeRequisitionRepo {
	return &fakeRequisitionRepo{requisitions: make(map[string]*entity.Requisition)}
}

func (r *fakeRequisitionRepo) snapshot() map[string]*entity.Requisition {
	snap := make(map[string]*entity.Requisition, len(r.requisitions))
	for k, v := range r.requisitions {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

func (r *fakeRequisitionRepo) restore(snap map[string]*entity.Requisition) {
	r.requisitions = snap
}

func (r *fakeRequisitionRepo) GetByID(id string) (*entity.Requisition, error) {
	req, ok := r.requisitions[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequisitionRepo) UpdateStatus(id, status string, fulfillmentPct float64) error {
	req, ok := r.requisitions[id]
	if !ok {
		return errors.New("requisición no encontrada")
	}
	req.Status = status
	req.FulfillmentPct = fulfillmentPct
	req.UpdatedAt = time.Now()
	return nil
}

// ── catálogos ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

// ── runner transaccional ──────────────────────────────────────────────────────

// fakeTxRunner ejecuta la unidad de trabajo contra los fakes, con rollback por
// snapshot. failCommits simula N commits consecutivos rechazados por conflicto
// de serialización (la unidad ya ejecutada se descarta, como en PostgreSQL).
type fakeTxRunner struct {
	mov   *fakeMovementRepo
	stock *fakeStockRepo
	req   *fakeRequisitionRepo

	failCommits int
	runs        int
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	reqRepo repository.RequisitionRepository,
) error) error {
	r.runs++
	stockSnap := r.stock.snapshot()
	movSnap := r.mov.snapshot()
	reqSnap := r.req.snapshot()

	if err := fn(r.mov, r.stock, r.req); err != nil {
		r.stock.restore(stockSnap)
		r.mov.restore(movSnap)
		r.req.restore(reqSnap)
		return err
	}
	if r.failCommits > 0 {
		r.failCommits--
		r.stock.restore(stockSnap)
		r.mov.restore(movSnap)
		r.req.restore(reqSnap)
		return errTxConflict
	}
	return nil
}

// ── entorno de test ───────────────────────────────────────────────────────────

type testEnv struct {
	stock      *fakeStockRepo
	mov        *fakeMovementRepo
	req        *fakeRequisitionRepo
	products   *fakeProductRepo
	warehouses *fakeWarehouseRepo
	txRunner   *fakeTxRunner
}

// newTestEnv catálogo mínimo: productos p1..p3 y bodegas wh-a..wh-d (central + cocinas).
func newTestEnv() *testEnv {
	env := &testEnv{
		stock: newFakeStockRepo(),
		mov:   newFakeMovementRepo(),
		req:   newFakeRequisitionRepo(),
		products: &fakeProductRepo{products: map[string]*entity.Product{
			"p1": {ID: "p1", SKU: "HARINA-01", Name: "Harina de trigo", Unit: "kg"},
			"p2": {ID: "p2", SKU: "QUESO-01", Name: "Queso mozzarella", Unit: "kg"},
			"p3": {ID: "p3", SKU: "SALSA-01", Name: "Salsa de tomate", Unit: "l"},
		}},
		warehouses: &fakeWarehouseRepo{warehouses: map[string]*entity.Warehouse{
			"wh-a": {ID: "wh-a", Code: "CEN", Name: "Bodega central", Type: entity.WarehouseTypeCentral},
			"wh-b": {ID: "wh-b", Code: "COC1", Name: "Cocina caliente", Type: entity.WarehouseTypeDepartment},
			"wh-c": {ID: "wh-c", Code: "COC2", Name: "Cocina fría", Type: entity.WarehouseTypeDepartment},
			"wh-d": {ID: "wh-d", Code: "BAR", Name: "Barra", Type: entity.WarehouseTypeDepartment},
		}},
	}
	env.txRunner = &fakeTxRunner{mov: env.mov, stock: env.stock, req: env.req}
	return env
}

// setStock fija directamente un contador (estado previo del escenario).
func (e *testEnv) setStock(productID, warehouseID string, qty int64) {
	_ = e.stock.Upsert(&entity.StockRecord{
		ProductID:    productID,
		WarehouseID:  warehouseID,
		CurrentStock: decimal.NewFromInt(qty),
		UpdatedAt:    time.Now(),
	})
}

func (e *testEnv) currentStock(productID, warehouseID string) decimal.Decimal {
	rec, _ := e.stock.Get(productID, warehouseID)
	if rec == nil {
		return decimal.Zero
	}
	return rec.CurrentStock
}

// ── helpers genéricos ─────────────────────────────────────────────────────────

func inRange(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
