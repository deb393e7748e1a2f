package coupon

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCode          = shared.Validation("code", "código do cupom é obrigatório")
	ErrEmptyName          = shared.Validation("name", "nome não pode ser vazio")
	ErrInvalidValue       = shared.Validation("discount_value", "valor do desconto deve ser maior que zero")
	ErrPercentageTooHigh  = shared.Validation("discount_value", "percentual não pode passar de 100")
	ErrInvalidDiscount    = shared.Validation("discount_type", "tipo de desconto deve ser percentage ou fixed")
	ErrInvalidMinPurchase = shared.Validation("min_purchase_amount", "compra mínima não pode ser negativa")
	ErrInvalidMaxUses     = shared.Validation("max_uses", "limite de usos não pode ser negativo")
	ErrMissingCategories  = shared.Validation("target_categories", "informe ao menos uma categoria alvo")
	ErrInvalidWindow      = shared.Validation("valid_until", "fim da validade anterior ao início")

	ErrCouponNotFound = shared.NotFound("cupom não encontrado")
	ErrDuplicateCode  = shared.Conflict("já existe um cupom com este código")

	ErrInactive        = shared.BusinessRule("coupon_inactive", "cupom inativo")
	ErrNotYetValid     = shared.BusinessRule("coupon_not_yet_valid", "cupom ainda não está válido")
	ErrExpired         = shared.BusinessRule("coupon_expired", "cupom expirado")
	ErrExhausted       = shared.BusinessRule("coupon_exhausted", "cupom atingiu o limite de usos")
	ErrMinimumNotMet   = shared.BusinessRule("minimum_not_met", "valor mínimo de compra não atingido")
	ErrNoEligibleItems = shared.BusinessRule("no_eligible_items", "nenhum item do carrinho pertence às categorias do cupom")
)

// CampaignType define como a base do desconto é calculada
type CampaignType string

const (
	CampaignTotalPurchase      CampaignType = "total_purchase"
	CampaignCategoryDiscount   CampaignType = "category_discount"
	CampaignSeasonalPromotion  CampaignType = "seasonal_promotion"
	CampaignClientReactivation CampaignType = "client_reactivation"
)

// DiscountType define como o valor do desconto é aplicado sobre a base
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Coupon representa uma campanha de fidelidade resgatável por código
type Coupon struct {
	ID                string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID          string          `json:"tenant_id" gorm:"size:36;uniqueIndex:idx_coupons_tenant_code"`
	BusinessCategory  string          `json:"business_category"`
	Code              string          `json:"code" gorm:"uniqueIndex:idx_coupons_tenant_code"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	CampaignType      CampaignType    `json:"campaign_type"`
	DiscountType      DiscountType    `json:"discount_type"`
	DiscountValue     decimal.Decimal `json:"discount_value" gorm:"type:numeric(14,2)"`
	MinPurchaseAmount decimal.Decimal `json:"min_purchase_amount" gorm:"type:numeric(14,2)"`
	TargetCategories  []string        `json:"target_categories" gorm:"serializer:json"`
	UsageCount        int             `json:"usage_count"`
	MaxUses           int             `json:"max_uses"` // 0 = ilimitado
	Active            bool            `json:"active"`
	ValidFrom         *time.Time      `json:"valid_from"`
	ValidUntil        *time.Time      `json:"valid_until"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NormalizeCode devolve o código na forma canônica (maiúsculas, sem espaços nas pontas)
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewCoupon cria um cupom ativo
func NewCoupon(
	tenantID, businessCategory, code, name string,
	campaignType CampaignType,
	discountType DiscountType,
	value, minPurchase decimal.Decimal,
	targetCategories []string,
	maxUses int,
) (*Coupon, error) {
	now := time.Now()
	c := &Coupon{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		BusinessCategory:  businessCategory,
		Code:              NormalizeCode(code),
		Name:              strings.TrimSpace(name),
		CampaignType:      campaignType,
		DiscountType:      discountType,
		DiscountValue:     value,
		MinPurchaseAmount: minPurchase,
		TargetCategories:  cleanCategories(targetCategories),
		MaxUses:           maxUses,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if c.CampaignType == "" {
		c.CampaignType = CampaignTotalPurchase
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate verifica os invariantes de cadastro do cupom
func (c *Coupon) Validate() error {
	if c.Code == "" {
		return ErrEmptyCode
	}
	if c.Name == "" {
		return ErrEmptyName
	}
	switch c.DiscountType {
	case DiscountPercentage:
		if c.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return ErrPercentageTooHigh
		}
	case DiscountFixed:
	default:
		return ErrInvalidDiscount
	}
	if !c.DiscountValue.IsPositive() {
		return ErrInvalidValue
	}
	if c.MinPurchaseAmount.IsNegative() {
		return ErrInvalidMinPurchase
	}
	if c.MaxUses < 0 {
		return ErrInvalidMaxUses
	}
	if c.CampaignType == CampaignCategoryDiscount && len(c.TargetCategories) == 0 {
		return ErrMissingCategories
	}
	if c.ValidFrom != nil && c.ValidUntil != nil && c.ValidUntil.Before(*c.ValidFrom) {
		return ErrInvalidWindow
	}
	return nil
}

// SetValidity define a janela de validade (qualquer ponta pode ser nula)
func (c *Coupon) SetValidity(from, until *time.Time) error {
	if from != nil && until != nil && until.Before(*from) {
		return ErrInvalidWindow
	}
	c.ValidFrom = from
	c.ValidUntil = until
	c.UpdatedAt = time.Now()
	return nil
}

// SetTargetCategories troca as categorias alvo, sem repetições nem vazios
func (c *Coupon) SetTargetCategories(categories []string) {
	c.TargetCategories = cleanCategories(categories)
}

// IsExpired indica se a janela de validade já terminou
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ValidUntil != nil && now.After(*c.ValidUntil)
}

// IsExhausted indica se o limite de usos foi atingido
func (c *Coupon) IsExhausted() bool {
	return c.MaxUses > 0 && c.UsageCount >= c.MaxUses
}

// CheckRedeemable verifica se o cupom pode ser usado em now
func (c *Coupon) CheckRedeemable(now time.Time) error {
	if !c.Active {
		return ErrInactive
	}
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return ErrNotYetValid
	}
	if c.IsExpired(now) {
		return ErrExpired
	}
	if c.IsExhausted() {
		return ErrExhausted
	}
	return nil
}

// Redeem contabiliza um uso. Ao atingir o limite o cupom é desativado.
func (c *Coupon) Redeem(now time.Time) error {
	if !c.Active {
		return ErrInactive
	}
	if c.IsExhausted() {
		return ErrExhausted
	}
	c.UsageCount++
	if c.IsExhausted() {
		c.Active = false
	}
	c.UpdatedAt = now
	return nil
}

// Activate reativa o cupom
func (c *Coupon) Activate(now time.Time) {
	c.Active = true
	c.UpdatedAt = now
}

// Deactivate desativa o cupom; cupons não são excluídos fisicamente
func (c *Coupon) Deactivate(now time.Time) {
	c.Active = false
	c.UpdatedAt = now
}

func cleanCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, cat := range categories {
		cat = strings.TrimSpace(cat)
		key := strings.ToLower(cat)
		if cat == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cat)
	}
	return out
}
