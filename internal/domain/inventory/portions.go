package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/resto-inventario/internal/domain/entity"
)

// MaxPortions calcula cuántas porciones de una receta se pueden producir con el
// stock disponible (servicio de dominio, puro y de solo lectura).
//
// stockByProduct mapea productID → stock disponible; una clave ausente significa
// que el producto no tiene ningún StockRecord y anula la receta completa (0).
// Para ingredientes con cantidad por porción > 0 se toma floor(stock/cantidad);
// el resultado es el mínimo entre ingredientes, nunca negativo.
func MaxPortions(ingredients []entity.RecipeIngredient, stockByProduct map[string]decimal.Decimal) int64 {
	var minPortions int64
	bounded := false

	for _, ing := range ingredients {
		stock, ok := stockByProduct[ing.ProductID]
		if !ok {
			// Un solo ingrediente sin registro de stock anula la receta.
			return 0
		}
		if !ing.QuantityPerPortion.GreaterThan(decimal.Zero) {
			continue
		}
		portions := stock.Div(ing.QuantityPerPortion).Floor().IntPart()
		if !bounded || portions < minPortions {
			minPortions = portions
			bounded = true
		}
	}

	if !bounded || minPortions < 0 {
		return 0
	}
	return minPortions
}
