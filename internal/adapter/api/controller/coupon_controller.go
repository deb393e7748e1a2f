package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// CouponController gerencia as campanhas de cupons
type CouponController struct {
	checkout *service.CheckoutService
	repo     coupon.Repository
	loc      *time.Location
	log      logger.Logger
	now      func() time.Time
}

// NewCouponController cria uma nova instância de CouponController
func NewCouponController(checkout *service.CheckoutService, store storage.Storage, loc *time.Location, log logger.Logger) *CouponController {
	return &CouponController{
		checkout: checkout,
		repo:     store.Repositories().Coupons,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

func (c *CouponController) response(cp *coupon.Coupon) dto.CouponResponse {
	return dto.CouponResponse{Coupon: cp, Expired: cp.IsExpired(c.now()), Exhausted: cp.IsExhausted()}
}

// apply copia a requisição para o cupom e revalida o cadastro
func (c *CouponController) apply(cp *coupon.Coupon, request dto.CouponRequest) error {
	from, err := dto.ParseOptionalDate(request.ValidFrom, c.loc)
	if err != nil {
		return shared.Validation("valid_from", err.Error())
	}
	until, err := dto.ParseOptionalDate(request.ValidUntil, c.loc)
	if err != nil {
		return shared.Validation("valid_until", err.Error())
	}
	if until != nil && len(request.ValidUntil) == len("2006-01-02") {
		end := until.AddDate(0, 0, 1).Add(-time.Nanosecond)
		until = &end
	}

	cp.Code = coupon.NormalizeCode(request.Code)
	cp.Name = request.Name
	cp.Description = request.Description
	if request.CampaignType != "" {
		cp.CampaignType = coupon.CampaignType(request.CampaignType)
	}
	cp.DiscountType = coupon.DiscountType(request.DiscountType)
	cp.DiscountValue = request.DiscountValue
	cp.MinPurchaseAmount = request.MinPurchaseAmount
	cp.MaxUses = request.MaxUses
	cp.SetTargetCategories(request.TargetCategories)
	if err := cp.SetValidity(from, until); err != nil {
		return err
	}
	if request.Active != nil {
		if *request.Active {
			cp.Activate(c.now())
		} else {
			cp.Deactivate(c.now())
		}
	}
	return cp.Validate()
}

// Create cadastra um cupom
// @Summary Cadastra um cupom
// @Description O código é gravado em maiúsculas e é único por empresa
// @Tags coupons
// @Accept json
// @Produce json
// @Security Bearer
// @Param coupon body dto.CouponRequest true "Dados do cupom"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /coupons [post]
func (c *CouponController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.CouponRequest
	if !bindJSON(ctx, &request) {
		return
	}

	cp, err := coupon.NewCoupon(tenantID, request.BusinessCategory, request.Code, request.Name,
		coupon.CampaignType(request.CampaignType), coupon.DiscountType(request.DiscountType),
		request.DiscountValue, request.MinPurchaseAmount, request.TargetCategories, request.MaxUses)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.apply(cp, request); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Create(ctx.Request.Context(), cp); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, c.response(cp))
}

// Get busca um cupom pelo ID
// @Summary Busca um cupom
// @Tags coupons
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cupom"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /coupons/{id} [get]
func (c *CouponController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	cp, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(cp))
}

// List lista os cupons
// @Summary Lista os cupons
// @Tags coupons
// @Produce json
// @Security Bearer
// @Param active query bool false "Somente ativos"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.CouponResponse]
// @Router /coupons [get]
func (c *CouponController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	onlyActive, _ := strconv.ParseBool(ctx.Query("active"))
	p := paginationOf(ctx)

	coupons, err := c.repo.List(ctx.Request.Context(), tenantID, onlyActive)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	page := slice(coupons, p)
	out := make([]dto.CouponResponse, len(page))
	for i, cp := range page {
		out[i] = c.response(cp)
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(out, len(coupons), p))
}

// Update atualiza um cupom
// @Summary Atualiza um cupom
// @Description O contador de usos não é alterado pela edição
// @Tags coupons
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cupom"
// @Param coupon body dto.CouponRequest true "Dados do cupom"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /coupons/{id} [put]
func (c *CouponController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.CouponRequest
	if !bindJSON(ctx, &request) {
		return
	}

	cp, err := c.update(ctx.Request.Context(), tenantID, ctx.Param("id"), func(cp *coupon.Coupon) error {
		return c.apply(cp, request)
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(cp))
}

// Deactivate desativa um cupom
// @Summary Desativa um cupom
// @Description Cupons não são excluídos: o histórico de vendas continua apontando para eles
// @Tags coupons
// @Produce json
// @Security Bearer
// @Param id path string true "ID do cupom"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /coupons/{id} [delete]
func (c *CouponController) Deactivate(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	cp, err := c.update(ctx.Request.Context(), tenantID, ctx.Param("id"), func(cp *coupon.Coupon) error {
		cp.Deactivate(c.now())
		return nil
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(cp))
}

func (c *CouponController) update(ctx context.Context, tenantID, id string, change func(*coupon.Coupon) error) (*coupon.Coupon, error) {
	cp, err := c.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := change(cp); err != nil {
		return nil, err
	}
	if err := c.repo.Update(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Validate verifica se um código pode ser usado agora
// @Summary Valida um cupom
// @Description Não contabiliza uso
// @Tags coupons
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ValidateCouponRequest true "Código"
// @Success 200 {object} dto.CouponResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /coupons/validate [post]
func (c *CouponController) Validate(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.ValidateCouponRequest
	if !bindJSON(ctx, &request) {
		return
	}

	cp, err := c.checkout.ValidateCoupon(ctx.Request.Context(), tenantID, request.Code)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(cp))
}

// Preview calcula o desconto de um cupom para um carrinho
// @Summary Simula o desconto
// @Description Calcula subtotal, desconto e total sem contabilizar uso
// @Tags coupons
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.PreviewDiscountRequest true "Código e carrinho"
// @Success 200 {object} service.DiscountPreview
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /coupons/preview [post]
func (c *CouponController) Preview(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.PreviewDiscountRequest
	if !bindJSON(ctx, &request) {
		return
	}

	preview, err := c.checkout.PreviewDiscount(ctx.Request.Context(), tenantID, request.Code, dto.ToCartLines(request.Items))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, preview)
}
