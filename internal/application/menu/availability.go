package menu

import (
	"context"
	"time"

	"github.com/tu-usuario/resto-inventario/internal/domain"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	domaininv "github.com/tu-usuario/resto-inventario/internal/domain/inventory"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

// AvailabilityUseCase deriva cuántas porciones de un ítem de menú se pueden
// producir con el stock de sus ingredientes y mantiene el valor cacheado en
// MenuStock. Solo lectura sobre el libro; nunca muta StockRecord.
type AvailabilityUseCase struct {
	recipeRepo    repository.RecipeRepository
	stockRepo     repository.StockRepository
	menuStockRepo repository.MenuStockRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(
	recipeRepo repository.RecipeRepository,
	stockRepo repository.StockRepository,
	menuStockRepo repository.MenuStockRepository,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{
		recipeRepo:    recipeRepo,
		stockRepo:     stockRepo,
		menuStockRepo: menuStockRepo,
	}
}

// CalculateMaxPortions calcula las porciones máximas para una lista arbitraria
// de ingredientes. warehouseID vacío agrega el stock de toda la red.
func (uc *AvailabilityUseCase) CalculateMaxPortions(ctx context.Context, ingredients []entity.RecipeIngredient, warehouseID string) (int64, error) {
	if len(ingredients) == 0 {
		return 0, domain.ErrInvalidInput
	}
	productIDs := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		productIDs = append(productIDs, ing.ProductID)
	}
	stockByProduct, err := uc.stockRepo.StockByProducts(productIDs, warehouseID)
	if err != nil {
		return 0, err
	}
	return domaininv.MaxPortions(ingredients, stockByProduct), nil
}

// RecalculateForItem recalcula el stock derivado de un ítem de menú en una
// bodega y lo persiste en MenuStock.CalculatedStock. Un ManualStock vigente
// nunca se pisa: el recálculo actualiza el valor calculado y el override sigue
// siendo el valor efectivo hasta que se limpie explícitamente.
// El cálculo usa los ingredientes base; toppings y adiciones son deltas
// opcionales y no acotan la disponibilidad del ítem.
func (uc *AvailabilityUseCase) RecalculateForItem(ctx context.Context, menuItemID, warehouseID string) (*entity.MenuStock, error) {
	if menuItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	recipe, err := uc.recipeRepo.GetByMenuItemID(menuItemID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrRecipeNotFound
	}

	portions, err := uc.CalculateMaxPortions(ctx, recipe.BaseIngredients, warehouseID)
	if err != nil {
		return nil, err
	}

	stock, err := uc.menuStockRepo.Get(menuItemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.MenuStock{MenuItemID: menuItemID, WarehouseID: warehouseID}
	}
	stock.CalculatedStock = portions
	stock.UpdatedAt = time.Now()
	if err := uc.menuStockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// SetManualStock fija el override del operador; los consumidores verán este
// valor como stock efectivo hasta que se limpie.
func (uc *AvailabilityUseCase) SetManualStock(ctx context.Context, menuItemID, warehouseID string, value int64) (*entity.MenuStock, error) {
	if menuItemID == "" || value < 0 {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.menuStockRepo.Get(menuItemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.MenuStock{MenuItemID: menuItemID, WarehouseID: warehouseID}
	}
	stock.ManualStock = &value
	stock.UpdatedAt = time.Now()
	if err := uc.menuStockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// ClearManualStock limpia el override; el stock efectivo vuelve al calculado.
func (uc *AvailabilityUseCase) ClearManualStock(ctx context.Context, menuItemID, warehouseID string) (*entity.MenuStock, error) {
	stock, err := uc.menuStockRepo.Get(menuItemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	stock.ManualStock = nil
	stock.UpdatedAt = time.Now()
	if err := uc.menuStockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// GetMenuStock devuelve el registro derivado de un (ítem, bodega).
func (uc *AvailabilityUseCase) GetMenuStock(ctx context.Context, menuItemID, warehouseID string) (*entity.MenuStock, error) {
	stock, err := uc.menuStockRepo.Get(menuItemID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	return stock, nil
}
