package controller

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/export"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// FinanceController gerencia os lançamentos financeiros (contas a pagar e a receber)
type FinanceController struct {
	finance *service.FinanceService
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
}

// NewFinanceController cria uma nova instância de FinanceController
func NewFinanceController(finance *service.FinanceService, loc *time.Location, log logger.Logger) *FinanceController {
	return &FinanceController{finance: finance, loc: loc, log: log, now: time.Now}
}

// date interpreta uma data obrigatória; vazio vira data zero para o domínio recusar
func (c *FinanceController) date(field, value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	t, err := dto.ParseDate(value, c.loc)
	if err != nil {
		return time.Time{}, shared.Validation(field, err.Error())
	}
	return t, nil
}

func (c *FinanceController) input(request dto.EntryRequest) (service.EntryInput, error) {
	due, err := c.date("due_date", request.DueDate)
	if err != nil {
		return service.EntryInput{}, err
	}
	paid, err := dto.ParseOptionalDate(request.PaymentDate, c.loc)
	if err != nil {
		return service.EntryInput{}, shared.Validation("payment_date", err.Error())
	}
	return service.EntryInput{
		BusinessCategory:   request.BusinessCategory,
		Kind:               finance.Kind(request.Kind),
		Amount:             request.Amount,
		Description:        request.Description,
		Notes:              request.Notes,
		DueDate:            due,
		IsBoleto:           request.IsBoleto,
		BoletoCode:         request.BoletoCode,
		IsInstallment:      request.IsInstallment,
		CurrentInstallment: request.CurrentInstallment,
		TotalInstallments:  request.TotalInstallments,
		PaymentDate:        paid,
		PaymentMethod:      request.PaymentMethod,
		PaymentProof:       request.PaymentProof,
	}, nil
}

// filter lê kind, status e o intervalo de vencimento da query
func (c *FinanceController) filter(ctx *gin.Context) (service.EntryFilter, error) {
	from, to, err := periodOf(ctx, c.loc)
	if err != nil {
		return service.EntryFilter{}, err
	}
	kind := finance.Kind(ctx.Query("kind"))
	if kind != "" && !kind.Valid() {
		return service.EntryFilter{}, finance.ErrInvalidKind
	}
	status := finance.Status(ctx.Query("status"))
	switch status {
	case "", finance.StatusPending, finance.StatusNearDue, finance.StatusOverdue, finance.StatusPaid:
	default:
		return service.EntryFilter{}, shared.Validation("status", "status deve ser pending, near_due, overdue ou paid")
	}
	return service.EntryFilter{
		ListFilter: finance.ListFilter{Kind: kind, DueFrom: from, DueTo: to},
		Status:     status,
	}, nil
}

// Create cadastra um lançamento
// @Summary Cadastra um lançamento
// @Description O status inicial é calculado pela data de vencimento; com payment_date o lançamento já nasce pago
// @Tags financial-entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param entry body dto.EntryRequest true "Dados do lançamento"
// @Success 201 {object} finance.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Router /financial-entries [post]
func (c *FinanceController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.EntryRequest
	if !bindJSON(ctx, &request) {
		return
	}
	in, err := c.input(request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	e, err := c.finance.Create(ctx.Request.Context(), tenantID, in)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, e)
}

// CreateInstallments gera uma série de parcelas mensais
// @Summary Gera parcelas
// @Description Divide o total em parcelas mensais; todas são gravadas ou nenhuma
// @Tags financial-entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param plan body dto.InstallmentRequest true "Plano de parcelas"
// @Success 201 {array} finance.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Router /financial-entries/installments [post]
func (c *FinanceController) CreateInstallments(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.InstallmentRequest
	if !bindJSON(ctx, &request) {
		return
	}
	first, err := c.date("first_due_date", request.FirstDueDate)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	entries, err := c.finance.CreateInstallments(ctx.Request.Context(), tenantID, service.InstallmentInput{
		BusinessCategory: request.BusinessCategory,
		Kind:             finance.Kind(request.Kind),
		Total:            request.Total,
		Description:      request.Description,
		FirstDue:         first,
		Count:            request.Installments,
		IsBoleto:         request.IsBoleto,
	})
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, entries)
}

// Get busca um lançamento pelo ID
// @Summary Busca um lançamento
// @Tags financial-entries
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lançamento"
// @Success 200 {object} finance.Entry
// @Failure 404 {object} dto.ErrorResponse
// @Router /financial-entries/{id} [get]
func (c *FinanceController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	e, err := c.finance.Get(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, e)
}

// List lista os lançamentos
// @Summary Lista os lançamentos
// @Description Ordenados pelo vencimento; o status é recalculado na leitura
// @Tags financial-entries
// @Produce json
// @Security Bearer
// @Param kind query string false "income ou expense"
// @Param status query string false "pending, near_due, overdue ou paid"
// @Param startDate query string false "Vencimento a partir de (AAAA-MM-DD)"
// @Param endDate query string false "Vencimento até (AAAA-MM-DD)"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[finance.Entry]
// @Failure 400 {object} dto.ErrorResponse
// @Router /financial-entries [get]
func (c *FinanceController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	filter, err := c.filter(ctx)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	p := paginationOf(ctx)

	entries, err := c.finance.List(ctx.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(slice(entries, p), len(entries), p))
}

// Update altera os dados de um lançamento
// @Summary Atualiza um lançamento
// @Description Os dados de pagamento só mudam pelas rotas pay e revert
// @Tags financial-entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lançamento"
// @Param entry body dto.EntryRequest true "Dados do lançamento"
// @Success 200 {object} finance.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /financial-entries/{id} [put]
func (c *FinanceController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.EntryRequest
	if !bindJSON(ctx, &request) {
		return
	}
	in, err := c.input(request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	e, err := c.finance.Update(ctx.Request.Context(), tenantID, ctx.Param("id"), in)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, e)
}

// Pay registra o pagamento de um lançamento
// @Summary Marca como pago
// @Description Exige data e forma de pagamento; pagar de novo substitui os dados anteriores
// @Tags financial-entries
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lançamento"
// @Param payment body dto.PaymentRequest true "Pagamento"
// @Success 200 {object} finance.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /financial-entries/{id}/pay [post]
func (c *FinanceController) Pay(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.PaymentRequest
	if !bindJSON(ctx, &request) {
		return
	}
	paid, err := c.date("payment_date", request.PaymentDate)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	e, err := c.finance.MarkPaid(ctx.Request.Context(), tenantID, ctx.Param("id"), paid, request.PaymentMethod, request.PaymentProof)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, e)
}

// Revert desfaz o pagamento de uma despesa
// @Summary Estorna o pagamento
// @Description Disponível apenas para despesas; o status volta a ser calculado pelo vencimento
// @Tags financial-entries
// @Produce json
// @Security Bearer
// @Param id path string true "ID do lançamento"
// @Success 200 {object} finance.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /financial-entries/{id}/revert [post]
func (c *FinanceController) Revert(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	e, err := c.finance.RevertPayment(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, e)
}

// Delete exclui um lançamento
// @Summary Exclui um lançamento
// @Tags financial-entries
// @Security Bearer
// @Param id path string true "ID do lançamento"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /financial-entries/{id} [delete]
func (c *FinanceController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	if err := c.finance.Delete(ctx.Request.Context(), tenantID, ctx.Param("id")); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Summary consolida os lançamentos do período
// @Summary Resumo financeiro
// @Description Totais por tipo, valores pagos, saldo e quantidade por status
// @Tags financial-entries
// @Produce json
// @Security Bearer
// @Param startDate query string false "Vencimento a partir de (AAAA-MM-DD)"
// @Param endDate query string false "Vencimento até (AAAA-MM-DD)"
// @Success 200 {object} finance.Summary
// @Failure 400 {object} dto.ErrorResponse
// @Router /financial-entries/summary [get]
func (c *FinanceController) Summary(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	from, to, err := periodOf(ctx, c.loc)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	summary, err := c.finance.Summary(ctx.Request.Context(), tenantID, from, to)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Export gera a planilha dos lançamentos
// @Summary Exporta os lançamentos
// @Description Aceita os mesmos filtros da listagem
// @Tags financial-entries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Security Bearer
// @Param format query string false "xlsx (padrão) ou csv"
// @Param kind query string false "income ou expense"
// @Param status query string false "pending, near_due, overdue ou paid"
// @Param startDate query string false "Vencimento a partir de (AAAA-MM-DD)"
// @Param endDate query string false "Vencimento até (AAAA-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /financial-entries/export [get]
func (c *FinanceController) Export(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	format, err := export.ParseFormat(ctx.Query("format"))
	if err != nil {
		badRequest(ctx, "Formato inválido", err)
		return
	}
	filter, err := c.filter(ctx)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	entries, err := c.finance.List(ctx.Request.Context(), tenantID, filter)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, entries); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+format.FileName(c.now().In(c.loc))+`"`)
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
