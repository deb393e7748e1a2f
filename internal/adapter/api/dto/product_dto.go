package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
)

// IngredientRequest é um item da receita de um prato
type IngredientRequest struct {
	ProductID    string          `json:"product_id" binding:"required"`
	Name         string          `json:"name"`
	UsedQuantity decimal.Decimal `json:"used_quantity"`
	Unit         string          `json:"unit"`
}

// ProductRequest representa os dados de cadastro e edição de um produto
type ProductRequest struct {
	BusinessCategory  string              `json:"business_category"`
	Name              string              `json:"name" binding:"required"`
	Description       string              `json:"description"`
	Barcode           string              `json:"barcode"`
	Category          string              `json:"category"`
	Price             decimal.Decimal     `json:"price"`
	Stock             decimal.Decimal     `json:"stock"`
	MinStock          decimal.Decimal     `json:"min_stock"`
	Unit              string              `json:"unit"`
	Perishable        bool                `json:"perishable"`
	ManufacturingDate string              `json:"manufacturing_date"`
	ExpiryDate        string              `json:"expiry_date"`
	Available         *bool               `json:"available"`
	Ingredients       []IngredientRequest `json:"ingredients"`
}

// ToIngredients converte a receita para o domínio
func (r ProductRequest) ToIngredients() []product.Ingredient {
	if len(r.Ingredients) == 0 {
		return nil
	}
	out := make([]product.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out[i] = product.Ingredient{
			ProductID:    ing.ProductID,
			Name:         ing.Name,
			UsedQuantity: ing.UsedQuantity,
			Unit:         ing.Unit,
		}
	}
	return out
}

// StockAdjustmentRequest é um ajuste manual de estoque; delta negativo dá baixa
type StockAdjustmentRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ProductResponse acrescenta ao produto os indicadores calculados
type ProductResponse struct {
	*product.Product
	LowStock bool `json:"low_stock"`
	Expired  bool `json:"expired"`
}
