package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart          = shared.Validation("items", "carrinho vazio")
	ErrEmptyProduct       = shared.Validation("product_id", "produto é obrigatório")
	ErrInvalidQuantity    = shared.Validation("quantity", "quantidade deve ser maior que zero")
	ErrInvalidUnitPrice   = shared.Validation("unit_price", "preço unitário não pode ser negativo")
	ErrInvalidDiscount    = shared.Validation("manual_discount", "desconto não pode ser negativo")
	ErrEmptyPaymentMethod = shared.Validation("payment_method", "forma de pagamento é obrigatória")
	ErrSaleNotFound       = shared.NotFound("venda não encontrada")
)

// CartItem é uma linha do carrinho com o preço congelado no momento da venda
type CartItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// NewCartItem cria uma linha calculando total = quantidade x preço unitário
func NewCartItem(productID, productName string, quantity int, unitPrice decimal.Decimal) (CartItem, error) {
	if strings.TrimSpace(productID) == "" {
		return CartItem{}, ErrEmptyProduct
	}
	if quantity <= 0 {
		return CartItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return CartItem{}, ErrInvalidUnitPrice
	}
	return CartItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Subtotal soma os totais das linhas
func Subtotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// Sale representa uma venda concluída
type Sale struct {
	ID               string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID         string          `json:"tenant_id" gorm:"size:36;index"`
	BusinessCategory string          `json:"business_category"`
	BranchID         string          `json:"branch_id"`
	ClientID         string          `json:"client_id"`
	Items            []CartItem      `json:"items" gorm:"serializer:json"`
	Subtotal         decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2)"`
	ManualDiscount   decimal.Decimal `json:"manual_discount" gorm:"type:numeric(14,2)"`
	CouponID         string          `json:"coupon_id"`
	CouponCode       string          `json:"coupon_code"`
	CouponDiscount   decimal.Decimal `json:"coupon_discount" gorm:"type:numeric(14,2)"`
	Total            decimal.Decimal `json:"total" gorm:"type:numeric(14,2)"`
	PaymentMethod    string          `json:"payment_method"`
	Notes            string          `json:"notes"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewSale monta a venda a partir das linhas e calcula os totais
func NewSale(
	tenantID, businessCategory, branchID, clientID string,
	items []CartItem,
	manualDiscount decimal.Decimal,
	paymentMethod string,
	now time.Time,
) (*Sale, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if manualDiscount.IsNegative() {
		return nil, ErrInvalidDiscount
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return nil, ErrEmptyPaymentMethod
	}

	s := &Sale{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		BusinessCategory: businessCategory,
		BranchID:         branchID,
		ClientID:         clientID,
		Items:            items,
		ManualDiscount:   manualDiscount,
		CouponDiscount:   decimal.Zero,
		PaymentMethod:    paymentMethod,
		CreatedAt:        now,
	}
	s.recalculate()
	return s, nil
}

// ApplyCoupon registra o cupom usado e o desconto calculado para ele
func (s *Sale) ApplyCoupon(couponID, code string, discount decimal.Decimal) {
	s.CouponID = couponID
	s.CouponCode = code
	s.CouponDiscount = discount
	s.recalculate()
}

// recalculate mantém subtotal = soma das linhas e total >= 0
func (s *Sale) recalculate() {
	s.Subtotal = Subtotal(s.Items)
	total := s.Subtotal.Sub(s.ManualDiscount.Add(s.CouponDiscount))
	if total.IsNegative() {
		total = decimal.Zero
	}
	s.Total = total
}

// ItemCount soma as quantidades vendidas
func (s *Sale) ItemCount() int {
	n := 0
	for _, it := range s.Items {
		n += it.Quantity
	}
	return n
}
