package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// CartLine é um item pedido no caixa; o preço vem sempre do catálogo
type CartLine struct {
	ProductID string
	Quantity  int
}

// CheckoutInput são os dados de fechamento de uma venda
type CheckoutInput struct {
	BusinessCategory string
	BranchID         string
	ClientID         string
	Items            []CartLine
	ManualDiscount   decimal.Decimal
	CouponCode       string
	PaymentMethod    string
	Notes            string
}

// Receipt é o resultado de uma venda concluída
type Receipt struct {
	Sale       *sale.Sale          `json:"sale"`
	Deductions []product.Deduction `json:"deductions"`
}

// DiscountPreview mostra o efeito de um cupom sobre um carrinho sem usá-lo
type DiscountPreview struct {
	Coupon   *coupon.Coupon  `json:"coupon"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CheckoutService fecha vendas: preço, cupom, baixa de estoque e uso do cupom
// acontecem numa única transação.
type CheckoutService struct {
	store storage.Storage
	log   logger.Logger
	now   Clock
}

// NewCheckoutService cria o serviço; clock nulo usa time.Now
func NewCheckoutService(store storage.Storage, log logger.Logger, clock Clock) *CheckoutService {
	return &CheckoutService{store: store, log: log, now: clockOrNow(clock)}
}

// ValidateCoupon verifica se o código pode ser usado agora. Não altera o cupom.
func (s *CheckoutService) ValidateCoupon(ctx context.Context, tenantID, code string) (*coupon.Coupon, error) {
	return s.redeemable(ctx, s.store.Repositories(), tenantID, code)
}

func (s *CheckoutService) redeemable(ctx context.Context, repos storage.Repositories, tenantID, code string) (*coupon.Coupon, error) {
	code = coupon.NormalizeCode(code)
	if code == "" {
		return nil, coupon.ErrEmptyCode
	}
	c, err := repos.Coupons.FindByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if err := c.CheckRedeemable(s.now()); err != nil {
		return nil, err
	}
	return c, nil
}

// PreviewDiscount calcula o desconto do cupom para o carrinho sem registrar uso
func (s *CheckoutService) PreviewDiscount(ctx context.Context, tenantID, code string, lines []CartLine) (*DiscountPreview, error) {
	repos := s.store.Repositories()
	c, err := s.redeemable(ctx, repos, tenantID, code)
	if err != nil {
		return nil, err
	}

	ids, err := productIDs(lines)
	if err != nil {
		return nil, err
	}
	products, err := repos.Products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	items, err := priceCart(lines, products)
	if err != nil {
		return nil, err
	}

	discount, err := coupon.ComputeDiscount(c, items, catalogOf(products))
	if err != nil {
		return nil, err
	}
	subtotal := sale.Subtotal(items)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	return &DiscountPreview{Coupon: c, Subtotal: subtotal, Discount: discount, Total: total}, nil
}

// Checkout conclui a venda. Nada é gravado se qualquer etapa falhar: falta de
// estoque, cupom inválido ou cupom esgotado por uma venda concorrente.
func (s *CheckoutService) Checkout(ctx context.Context, tenantID string, in CheckoutInput) (*Receipt, error) {
	ids, err := productIDs(in.Items)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var receipt *Receipt
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		stock, err := repos.Products.LockByIDs(ctx, tenantID, ids)
		if err != nil {
			return err
		}
		items, err := priceCart(in.Items, stock)
		if err != nil {
			return err
		}

		plan := product.NewStockPlan()
		for _, line := range in.Items {
			p := stock[line.ProductID]
			if err := p.CanBeSold(now); err != nil {
				return err
			}
			if err := plan.AddSale(p, line.Quantity); err != nil {
				return err
			}
		}
		if err := lockMissing(ctx, repos, tenantID, plan, stock); err != nil {
			return err
		}

		sl, err := sale.NewSale(tenantID, in.BusinessCategory, in.BranchID, in.ClientID, items, in.ManualDiscount, in.PaymentMethod, now)
		if err != nil {
			return err
		}
		sl.Notes = strings.TrimSpace(in.Notes)

		var c *coupon.Coupon
		if strings.TrimSpace(in.CouponCode) != "" {
			if c, err = s.redeemable(ctx, repos, tenantID, in.CouponCode); err != nil {
				return err
			}
			discount, err := coupon.ComputeDiscount(c, items, catalogOf(stock))
			if err != nil {
				return err
			}
			sl.ApplyCoupon(c.ID, c.Code, discount)
		}

		deductions, err := plan.Apply(stock)
		if err != nil {
			return err
		}
		for _, d := range deductions {
			if err := repos.Products.UpdateStock(ctx, tenantID, d.ProductID, d.After); err != nil {
				return err
			}
		}

		if c != nil {
			if err := repos.Coupons.IncrementUsage(ctx, tenantID, c.ID); err != nil {
				return err
			}
		}

		if err := repos.Sales.Create(ctx, sl); err != nil {
			return err
		}

		if in.ClientID != "" {
			cl, err := repos.Clients.FindByID(ctx, tenantID, in.ClientID)
			if err != nil {
				return err
			}
			cl.UpdateLastPurchase(now)
			if err := repos.Clients.Update(ctx, cl); err != nil {
				return err
			}
		}

		receipt = &Receipt{Sale: sl, Deductions: deductions}
		return nil
	})
	if err != nil {
		s.log.Warn("Venda recusada", "tenant_id", tenantID, "error", err)
		return nil, err
	}

	s.log.Info("Venda concluída",
		"tenant_id", tenantID,
		"sale_id", receipt.Sale.ID,
		"total", receipt.Sale.Total.StringFixed(2),
		"coupon", receipt.Sale.CouponCode,
	)
	return receipt, nil
}

// lockMissing bloqueia os ingredientes que ainda não estão no mapa de estoque
func lockMissing(ctx context.Context, repos storage.Repositories, tenantID string, plan *product.StockPlan, stock map[string]*product.Product) error {
	var missing []string
	for _, id := range plan.ProductIDs() {
		if _, ok := stock[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	more, err := repos.Products.LockByIDs(ctx, tenantID, missing)
	if err != nil {
		return err
	}
	for id, p := range more {
		stock[id] = p
	}
	return nil
}

// productIDs valida as linhas e devolve os produtos distintos
func productIDs(lines []CartLine) ([]string, error) {
	if len(lines) == 0 {
		return nil, sale.ErrEmptyCart
	}
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, sale.ErrEmptyProduct
		}
		if l.Quantity <= 0 {
			return nil, sale.ErrInvalidQuantity
		}
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids, nil
}

// priceCart congela o preço de catálogo em cada linha
func priceCart(lines []CartLine, products map[string]*product.Product) ([]sale.CartItem, error) {
	items := make([]sale.CartItem, 0, len(lines))
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			return nil, product.ErrProductNotFound
		}
		item, err := sale.NewCartItem(p.ID, p.Name, l.Quantity, p.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func catalogOf(products map[string]*product.Product) coupon.Catalog {
	catalog := make(coupon.Catalog, len(products))
	for id, p := range products {
		catalog[id] = p.Category
	}
	return catalog
}
