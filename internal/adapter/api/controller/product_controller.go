package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var errUnknownIngredient = shared.Validation("ingredients", "ingrediente não cadastrado")

// ProductController gerencia o catálogo e o estoque
type ProductController struct {
	repo      product.Repository
	inventory *service.InventoryService
	loc       *time.Location
	log       logger.Logger
	now       func() time.Time
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(store storage.Storage, inventory *service.InventoryService, loc *time.Location, log logger.Logger) *ProductController {
	return &ProductController{
		repo:      store.Repositories().Products,
		inventory: inventory,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

func (c *ProductController) response(p *product.Product) dto.ProductResponse {
	return dto.ProductResponse{Product: p, LowStock: p.IsLowStock(), Expired: p.IsExpired(c.now())}
}

func (c *ProductController) responses(products []*product.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = c.response(p)
	}
	return out
}

// apply copia a requisição para o produto e valida a receita
func (c *ProductController) apply(ctx context.Context, p *product.Product, request dto.ProductRequest) error {
	manufacturing, err := dto.ParseOptionalDate(request.ManufacturingDate, c.loc)
	if err != nil {
		return shared.Validation("manufacturing_date", err.Error())
	}
	expiry, err := dto.ParseOptionalDate(request.ExpiryDate, c.loc)
	if err != nil {
		return shared.Validation("expiry_date", err.Error())
	}

	p.Name = request.Name
	p.Description = request.Description
	p.Barcode = request.Barcode
	p.Category = request.Category
	p.Price = request.Price
	p.Stock = request.Stock
	p.MinStock = request.MinStock
	p.Unit = request.Unit
	if request.Available != nil {
		p.Available = *request.Available
	}
	if request.Perishable {
		if err := p.SetPerishable(manufacturing, expiry); err != nil {
			return err
		}
	} else {
		p.Perishable = false
		p.ManufacturingDate, p.ExpiryDate = nil, nil
	}

	ingredients := request.ToIngredients()
	if err := p.SetIngredients(ingredients); err != nil {
		return err
	}
	if len(ingredients) > 0 {
		ids := make([]string, len(ingredients))
		for i, ing := range ingredients {
			ids[i] = ing.ProductID
		}
		found, err := c.repo.FindByIDs(ctx, p.TenantID, ids)
		if err != nil {
			return err
		}
		for i, ing := range ingredients {
			stock, ok := found[ing.ProductID]
			if !ok {
				return errUnknownIngredient
			}
			if ing.Name == "" {
				p.Ingredients[i].Name = stock.Name
			}
		}
	}
	return p.Validate()
}

// Create cadastra um produto
// @Summary Cadastra um produto
// @Description Produtos com ingredientes são compostos: a venda baixa o estoque dos ingredientes
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.ProductRequest
	if !bindJSON(ctx, &request) {
		return
	}

	p, err := product.NewProduct(tenantID, request.BusinessCategory, request.Name, request.Category,
		request.Price, request.Stock, request.MinStock, request.Unit)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.apply(ctx.Request.Context(), p, request); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.repo.Create(ctx.Request.Context(), p); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, c.response(p))
}

// Get busca um produto pelo ID
// @Summary Busca um produto
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(p))
}

// List lista os produtos
// @Summary Lista os produtos
// @Tags products
// @Produce json
// @Security Bearer
// @Param category query string false "Categoria"
// @Param search query string false "Trecho do nome ou código de barras"
// @Param available query bool false "Somente disponíveis"
// @Param low_stock query bool false "Somente com estoque baixo"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.ProductResponse]
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)
	onlyAvailable, _ := strconv.ParseBool(ctx.Query("available"))
	onlyLowStock, _ := strconv.ParseBool(ctx.Query("low_stock"))

	products, err := c.repo.List(ctx.Request.Context(), tenantID, product.ListFilter{
		Category:      ctx.Query("category"),
		Search:        ctx.Query("search"),
		OnlyAvailable: onlyAvailable,
		OnlyLowStock:  onlyLowStock,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(c.responses(slice(products, p)), len(products), p))
}

// Update atualiza um produto
// @Summary Atualiza um produto
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.ProductRequest
	if !bindJSON(ctx, &request) {
		return
	}

	p, err := c.repo.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	if err := c.apply(ctx.Request.Context(), p, request); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	p.UpdatedAt = c.now()
	if err := c.repo.Update(ctx.Request.Context(), p); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(p))
}

// Delete exclui um produto
// @Summary Exclui um produto
// @Tags products
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.repo.Delete(ctx.Request.Context(), tenantID, ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// AdjustStock aplica um ajuste manual de estoque
// @Summary Ajusta o estoque
// @Description Delta positivo dá entrada, negativo dá baixa; o estoque nunca fica negativo
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param adjustment body dto.StockAdjustmentRequest true "Ajuste"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /products/{id}/stock [post]
func (c *ProductController) AdjustStock(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.StockAdjustmentRequest
	if !bindJSON(ctx, &request) {
		return
	}

	p, err := c.inventory.AdjustStock(ctx.Request.Context(), tenantID, ctx.Param("id"), request.Delta)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, c.response(p))
}
