package repository

import "github.com/tu-usuario/resto-inventario/internal/domain/entity"

// RecipeRepository puerto de solo lectura sobre el catálogo de recetas.
type RecipeRepository interface {
	// GetByMenuItemID devuelve la receta o nil si el ítem no tiene receta.
	GetByMenuItemID(menuItemID string) (*entity.Recipe, error)
	// ListActiveMenuItemIDs devuelve los ítems de menú activos para el barrido
	// de recálculo, en orden estable.
	ListActiveMenuItemIDs() ([]string, error)
}
