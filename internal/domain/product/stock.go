package product

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ErrInsufficientStock é o sentinela usado com errors.Is
var ErrInsufficientStock = shared.BusinessRule("insufficient_stock", "estoque insuficiente")

// Shortage descreve um item sem estoque suficiente
type Shortage struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
}

// InsufficientStockError lista todos os itens em falta de uma operação
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s (necessário %s, disponível %s)", s.Name, s.Required, s.Available))
	}
	return "estoque insuficiente: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock || target == shared.ErrBusinessRule
}

// Code identifica a regra violada para a API
func (e *InsufficientStockError) Code() string { return "insufficient_stock" }

// Deduction é a baixa calculada para um item de estoque
type Deduction struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Before    decimal.Decimal `json:"before"`
	After     decimal.Decimal `json:"after"`
}

// StockPlan acumula o consumo de estoque de uma operação para conferir
// tudo antes de baixar qualquer item.
type StockPlan struct {
	required map[string]decimal.Decimal
	names    map[string]string
	order    []string
}

// NewStockPlan cria um plano vazio
func NewStockPlan() *StockPlan {
	return &StockPlan{
		required: make(map[string]decimal.Decimal),
		names:    make(map[string]string),
	}
}

// Require soma qty ao consumo do item productID; qty precisa ser positiva
func (sp *StockPlan) Require(productID, name string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return ErrInvalidQuantity
	}
	if _, ok := sp.required[productID]; !ok {
		sp.order = append(sp.order, productID)
		sp.required[productID] = decimal.Zero
		sp.names[productID] = name
	}
	sp.required[productID] = sp.required[productID].Add(qty)
	return nil
}

// AddSale registra a venda de quantity unidades de p: pratos consomem os
// ingredientes, os demais produtos consomem o próprio estoque.
// Nada é registrado se quantity ou alguma receita for inválida.
func (sp *StockPlan) AddSale(p *Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	q := decimal.NewFromInt(int64(quantity))
	if !p.IsComposite() {
		return sp.Require(p.ID, p.Name, q)
	}
	for _, ing := range p.Ingredients {
		if ing.ProductID == "" || !ing.UsedQuantity.IsPositive() {
			return ErrInvalidIngredient
		}
	}
	for _, ing := range p.Ingredients {
		if err := sp.Require(ing.ProductID, ing.Name, ing.UsedQuantity.Mul(q)); err != nil {
			return err
		}
	}
	return nil
}

// ProductIDs devolve os itens envolvidos, na ordem em que foram pedidos
func (sp *StockPlan) ProductIDs() []string {
	ids := make([]string, len(sp.order))
	copy(ids, sp.order)
	return ids
}

// Check confere todos os itens contra o estoque atual sem alterar nada.
// Itens ausentes do mapa contam como estoque zero.
func (sp *StockPlan) Check(stock map[string]*Product) error {
	var shortages []Shortage
	for _, id := range sp.order {
		need := sp.required[id]
		available := decimal.Zero
		name := sp.names[id]
		if p := stock[id]; p != nil {
			available = p.Stock
			name = p.Name
		}
		if available.LessThan(need) {
			shortages = append(shortages, Shortage{
				ProductID: id,
				Name:      name,
				Required:  need,
				Available: available,
			})
		}
	}
	if len(shortages) > 0 {
		sort.SliceStable(shortages, func(i, j int) bool { return shortages[i].Name < shortages[j].Name })
		return &InsufficientStockError{Shortages: shortages}
	}
	return nil
}

// Apply confere e então baixa o estoque dos produtos do mapa, com piso em zero.
// Em caso de falta nenhum produto é alterado.
func (sp *StockPlan) Apply(stock map[string]*Product) ([]Deduction, error) {
	if err := sp.Check(stock); err != nil {
		return nil, err
	}
	deductions := make([]Deduction, 0, len(sp.order))
	for _, id := range sp.order {
		p := stock[id]
		if p == nil {
			continue
		}
		need := sp.required[id]
		after := p.Stock.Sub(need)
		if after.IsNegative() {
			after = decimal.Zero
		}
		deductions = append(deductions, Deduction{
			ProductID: id,
			Name:      p.Name,
			Required:  need,
			Before:    p.Stock,
			After:     after,
		})
		p.Stock = after
	}
	return deductions, nil
}

// SellComposite baixa os ingredientes de quantity unidades do prato
func SellComposite(dish *Product, quantity int, stock map[string]*Product) ([]Deduction, error) {
	plan := NewStockPlan()
	if err := plan.AddSale(dish, quantity); err != nil {
		return nil, err
	}
	return plan.Apply(stock)
}
