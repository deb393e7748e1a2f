package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName          = shared.Validation("name", "nome não pode ser vazio")
	ErrInvalidPrice       = shared.Validation("price", "preço não pode ser negativo")
	ErrInvalidStock       = shared.Validation("stock", "estoque não pode ser negativo")
	ErrInvalidMinStock    = shared.Validation("min_stock", "estoque mínimo não pode ser negativo")
	ErrInvalidIngredient  = shared.Validation("ingredients", "ingrediente deve ter produto e quantidade positiva")
	ErrSelfIngredient     = shared.Validation("ingredients", "produto não pode ser ingrediente de si mesmo")
	ErrInvalidExpiry      = shared.Validation("expiry_date", "validade anterior à fabricação")
	ErrInvalidAdjustment  = shared.Validation("delta", "ajuste de estoque não pode ser zero")
	ErrInvalidQuantity    = shared.Validation("quantity", "quantidade deve ser maior que zero")
	ErrProductUnavailable = shared.BusinessRule("product_unavailable", "produto indisponível para venda")
	ErrProductNotFound    = shared.NotFound("produto não encontrado")
)

// Ingredient é o consumo de um item de estoque por unidade vendida de um prato
type Ingredient struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	UsedQuantity decimal.Decimal `json:"used_quantity"`
	Unit         string          `json:"unit"`
}

// Product representa um item de catálogo e estoque
type Product struct {
	ID                string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID          string          `json:"tenant_id" gorm:"size:36;index"`
	BusinessCategory  string          `json:"business_category"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Barcode           string          `json:"barcode"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric(14,2)"`
	Stock             decimal.Decimal `json:"stock" gorm:"type:numeric(14,3)"`
	MinStock          decimal.Decimal `json:"min_stock" gorm:"type:numeric(14,3)"`
	Unit              string          `json:"unit"`
	Perishable        bool            `json:"perishable"`
	ManufacturingDate *time.Time      `json:"manufacturing_date"`
	ExpiryDate        *time.Time      `json:"expiry_date"`
	Available         bool            `json:"available"`
	Ingredients       []Ingredient    `json:"ingredients" gorm:"serializer:json"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewProduct cria um produto disponível para venda
func NewProduct(
	tenantID, businessCategory, name, category string,
	price, stock, minStock decimal.Decimal,
	unit string,
) (*Product, error) {
	now := time.Now()
	p := &Product{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		BusinessCategory: businessCategory,
		Name:             strings.TrimSpace(name),
		Category:         strings.TrimSpace(category),
		Price:            price,
		Stock:            stock,
		MinStock:         minStock,
		Unit:             unit,
		Available:        true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate verifica os invariantes de cadastro
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock.IsNegative() {
		return ErrInvalidStock
	}
	if p.MinStock.IsNegative() {
		return ErrInvalidMinStock
	}
	for _, ing := range p.Ingredients {
		if ing.ProductID == "" || !ing.UsedQuantity.IsPositive() {
			return ErrInvalidIngredient
		}
		if ing.ProductID == p.ID {
			return ErrSelfIngredient
		}
	}
	if p.ManufacturingDate != nil && p.ExpiryDate != nil && p.ExpiryDate.Before(*p.ManufacturingDate) {
		return ErrInvalidExpiry
	}
	return nil
}

// SetPerishable marca o produto como perecível com datas opcionais
func (p *Product) SetPerishable(manufacturing, expiry *time.Time) error {
	if manufacturing != nil && expiry != nil && expiry.Before(*manufacturing) {
		return ErrInvalidExpiry
	}
	p.Perishable = true
	p.ManufacturingDate = manufacturing
	p.ExpiryDate = expiry
	p.UpdatedAt = time.Now()
	return nil
}

// SetIngredients define a receita do produto, tornando-o composto
func (p *Product) SetIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if ing.ProductID == "" || !ing.UsedQuantity.IsPositive() {
			return ErrInvalidIngredient
		}
		if ing.ProductID == p.ID {
			return ErrSelfIngredient
		}
	}
	p.Ingredients = ingredients
	p.UpdatedAt = time.Now()
	return nil
}

// IsComposite indica se a venda consome ingredientes em vez do próprio estoque
func (p *Product) IsComposite() bool {
	return len(p.Ingredients) > 0
}

// IsLowStock indica se o estoque está no mínimo ou abaixo dele
func (p *Product) IsLowStock() bool {
	return p.MinStock.IsPositive() && p.Stock.LessThanOrEqual(p.MinStock)
}

// IsExpired indica se um perecível passou da validade
func (p *Product) IsExpired(now time.Time) bool {
	return p.Perishable && p.ExpiryDate != nil && now.After(*p.ExpiryDate)
}

// CanBeSold verifica disponibilidade e validade
func (p *Product) CanBeSold(now time.Time) error {
	if !p.Available || p.IsExpired(now) {
		return ErrProductUnavailable
	}
	return nil
}

// AdjustStock aplica um ajuste manual; o estoque nunca fica negativo
func (p *Product) AdjustStock(delta decimal.Decimal, now time.Time) error {
	if delta.IsZero() {
		return ErrInvalidAdjustment
	}
	next := p.Stock.Add(delta)
	if next.IsNegative() {
		return &InsufficientStockError{Shortages: []Shortage{{
			ProductID: p.ID,
			Name:      p.Name,
			Required:  delta.Neg(),
			Available: p.Stock,
		}}}
	}
	p.Stock = next
	p.UpdatedAt = now
	return nil
}
