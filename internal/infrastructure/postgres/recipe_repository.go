package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
	"github.com/tu-usuario/resto-inventario/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo lectura del catálogo de recetas sobre PostgreSQL. Los ingredientes
// viven en recipe_ingredients con un rol (base, topping, addon) por fila.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// GetByMenuItemID arma la receta de un ítem de menú o nil si no tiene receta.
func (r *RecipeRepo) GetByMenuItemID(menuItemID string) (*entity.Recipe, error) {
	query := `
		SELECT product_id, quantity_per_portion, unit, role
		FROM recipe_ingredients WHERE menu_item_id = $1
		ORDER BY role, product_id`
	rows, err := r.q.Query(context.Background(), query, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	defer rows.Close()

	recipe := &entity.Recipe{MenuItemID: menuItemID}
	found := false
	for rows.Next() {
		var ing entity.RecipeIngredient
		var role string
		if err := rows.Scan(&ing.ProductID, &ing.QuantityPerPortion, &ing.Unit, &role); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		found = true
		switch role {
		case "topping":
			recipe.ToppingIngredients = append(recipe.ToppingIngredients, ing)
		case "addon":
			recipe.AddonIngredients = append(recipe.AddonIngredients, ing)
		default:
			recipe.BaseIngredients = append(recipe.BaseIngredients, ing)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return recipe, nil
}

// ListActiveMenuItemIDs ítems de menú activos para el barrido, en orden estable.
func (r *RecipeRepo) ListActiveMenuItemIDs() ([]string, error) {
	query := `
		SELECT DISTINCT ri.menu_item_id
		FROM recipe_ingredients ri
		JOIN menu_items mi ON mi.id = ri.menu_item_id AND mi.active
		ORDER BY ri.menu_item_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active menu items: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan menu item id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
