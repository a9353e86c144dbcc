package entity

import "github.com/shopspring/decimal"

// RecipeIngredient una materia prima requerida por porción de un ítem de menú.
type RecipeIngredient struct {
	ProductID          string
	QuantityPerPortion decimal.Decimal
	Unit               string
}

// Recipe receta de un ítem de menú: ingredientes base más deltas opcionales
// de toppings y adiciones. Catálogo de solo lectura para este módulo.
type Recipe struct {
	MenuItemID         string
	BaseIngredients    []RecipeIngredient
	ToppingIngredients []RecipeIngredient
	AddonIngredients   []RecipeIngredient
}

// AllIngredients devuelve base + toppings + adiciones en una sola lista.
func (r *Recipe) AllIngredients() []RecipeIngredient {
	out := make([]RecipeIngredient, 0, len(r.BaseIngredients)+len(r.ToppingIngredients)+len(r.AddonIngredients))
	out = append(out, r.BaseIngredients...)
	out = append(out, r.ToppingIngredients...)
	out = append(out, r.AddonIngredients...)
	return out
}
