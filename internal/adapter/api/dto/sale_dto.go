package dto

import (
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/service"
)

// CartLineRequest é uma linha do carrinho: produto e quantidade
type CartLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest representa a finalização de uma venda
type CheckoutRequest struct {
	BusinessCategory string            `json:"business_category"`
	BranchID         string            `json:"branch_id"`
	ClientID         string            `json:"client_id"`
	Items            []CartLineRequest `json:"items"`
	ManualDiscount   decimal.Decimal   `json:"manual_discount"`
	CouponCode       string            `json:"coupon_code"`
	PaymentMethod    string            `json:"payment_method"`
	Notes            string            `json:"notes"`
}

// ToCartLines converte as linhas do carrinho
func ToCartLines(items []CartLineRequest) []service.CartLine {
	lines := make([]service.CartLine, len(items))
	for i, it := range items {
		lines[i] = service.CartLine{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return lines
}

// ToInput converte a requisição na entrada do serviço de vendas
func (r CheckoutRequest) ToInput() service.CheckoutInput {
	return service.CheckoutInput{
		BusinessCategory: r.BusinessCategory,
		BranchID:         r.BranchID,
		ClientID:         r.ClientID,
		Items:            ToCartLines(r.Items),
		ManualDiscount:   r.ManualDiscount,
		CouponCode:       r.CouponCode,
		PaymentMethod:    r.PaymentMethod,
		Notes:            r.Notes,
	}
}
