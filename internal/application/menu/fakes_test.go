package menu_test

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el lado de menú: aquí solo interesan las lecturas de
// stock agregado y la persistencia de MenuStock; el libro nunca se muta.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStockReader struct {
	// productID|warehouseID → stock
	stock map[string]decimal.Decimal
}

func newFakeStockReader() *fakeStockReader {
	return &fakeStockReader{stock: make(map[string]decimal.Decimal)}
}

func (r *fakeStockReader) set(productID, warehouseID string, qty int64) {
	r.stock[productID+"|"+warehouseID] = decimal.NewFromInt(qty)
}

func (r *fakeStockReader) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	qty, ok := r.stock[productID+"|"+warehouseID]
	if !ok {
		return nil, nil
	}
	return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID, CurrentStock: qty}, nil
}

func (r *fakeStockReader) GetForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	rec, err := r.Get(productID, warehouseID)
	if err != nil || rec != nil {
		return rec, err
	}
	return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID}, nil
}

func (r *fakeStockReader) Upsert(record *entity.StockRecord) error {
	r.stock[record.ProductID+"|"+record.WarehouseID] = record.CurrentStock
	return nil
}

func (r *fakeStockReader) ListAvailableByProductForUpdate(productID string) ([]*entity.StockRecord, error) {
	return nil, errors.New("no usado en este lado")
}

func (r *fakeStockReader) StockByProducts(productIDs []string, warehouseID string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal)
	for _, pid := range productIDs {
		for key, qty := range r.stock {
			p, w := splitKey(key)
			if p != pid {
				continue
			}
			if warehouseID != "" && w != warehouseID {
				continue
			}
			out[pid] = out[pid].Add(qty)
		}
	}
	return out, nil
}

func (r *fakeStockReader) ListBelowMin(limit, offset int) ([]*entity.StockRecord, error) {
	return nil, nil
}

func splitKey(key string) (productID, warehouseID string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

// ── menú ──────────────────────────────────────────────────────────────────────

type fakeMenuStockRepo struct {
	records map[string]*entity.MenuStock
	upserts int
}

func newFakeMenuStockRepo() *fakeMenuStockRepo {
	return &fakeMenuStockRepo{records: make(map[string]*entity.MenuStock)}
}

func (r *fakeMenuStockRepo) Get(menuItemID, warehouseID string) (*entity.MenuStock, error) {
	rec, ok := r.records[menuItemID+"|"+warehouseID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	if rec.ManualStock != nil {
		v := *rec.ManualStock
		cp.ManualStock = &v
	}
	return &cp, nil
}

func (r *fakeMenuStockRepo) Upsert(stock *entity.MenuStock) error {
	cp := *stock
	if stock.ManualStock != nil {
		v := *stock.ManualStock
		cp.ManualStock = &v
	}
	r.records[stock.MenuItemID+"|"+stock.WarehouseID] = &cp
	r.upserts++
	return nil
}

// ── recetas ───────────────────────────────────────────────────────────────────

type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
	active  []string

	// listGate, si no es nil, bloquea ListActiveMenuItemIDs hasta que se cierre
	// (para probar el rechazo de barridos solapados).
	listGate chan struct{}
	listErrs map[string]error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: make(map[string]*entity.Recipe)}
}

func (r *fakeRecipeRepo) add(recipe *entity.Recipe) {
	r.recipes[recipe.MenuItemID] = recipe
	r.active = append(r.active, recipe.MenuItemID)
	sort.Strings(r.active)
}

func (r *fakeRecipeRepo) GetByMenuItemID(menuItemID string) (*entity.Recipe, error) {
	if err, ok := r.listErrs[menuItemID]; ok {
		return nil, err
	}
	recipe, ok := r.recipes[menuItemID]
	if !ok {
		return nil, nil
	}
	return recipe, nil
}

func (r *fakeRecipeRepo) ListActiveMenuItemIDs() ([]string, error) {
	if r.listGate != nil {
		<-r.listGate
	}
	out := make([]string, len(r.active))
	copy(out, r.active)
	return out, nil
}

// ── bodegas ───────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	warehouses []*entity.Warehouse
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	for _, w := range r.warehouses {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, len(r.warehouses))
	copy(out, r.warehouses)
	return out, nil
}
