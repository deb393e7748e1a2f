package route_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/route"
	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

type apiError struct {
	Error   string          `json:"error"`
	Details string          `json:"details"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	t      *testing.T
	router *gin.Engine
	tenant string
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	log := logger.Nop()
	jwtService, err := auth.NewJWTService("segredo-de-teste", time.Hour, "erp-multinegocio-api")
	require.NoError(t, err)

	loc := time.UTC
	tenancy := service.NewTenancyService(store, log, nil)
	checkout := service.NewCheckoutService(store, log, nil)
	finance := service.NewFinanceService(store, log, nil)
	messaging := service.NewMessagingService(store, nil, log)
	reminders := service.NewReminderService(store, nil, nil, loc, log, nil)
	inventory := service.NewInventoryService(store, log, nil)
	notifications := service.NewNotificationService(store, nil, log)

	router := gin.New()
	route.SetupRoutes(router, route.Controllers{
		Auth:         controller.NewAuthController(tenancy, jwtService, store, log),
		Company:      controller.NewCompanyController(tenancy, store, log),
		Branch:       controller.NewBranchController(tenancy, store, log),
		User:         controller.NewUserController(tenancy, store, log),
		Client:       controller.NewClientController(store, messaging, loc, log),
		Product:      controller.NewProductController(store, inventory, loc, log),
		Sale:         controller.NewSaleController(checkout, store, loc, log),
		Coupon:       controller.NewCouponController(checkout, store, loc, log),
		Finance:      controller.NewFinanceController(finance, loc, log),
		Appointment:  controller.NewAppointmentController(store, reminders, loc, log),
		Integration:  controller.NewIntegrationController(store, log),
		Notification: controller.NewNotificationController(notifications, store, log),
		Transfer:     controller.NewTransferController(inventory, store, log),
		HealthChecker: func(c *gin.Context) error {
			return store.Ping(c.Request.Context())
		},
	}, route.Dependencies{JWT: jwtService, TenantValidator: tenancy})

	return &testAPI{t: t, router: router}
}

func (a *testAPI) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// signUp cadastra uma empresa, cria o administrador e guarda o token
func (a *testAPI) signUp() {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/companies", gin.H{
		"name": "Padaria Central", "document": "12345678000199", "business_category": "restaurant",
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Company struct {
			ID string `json:"id"`
		} `json:"company"`
		MainBranch struct {
			IsMain bool `json:"is_main"`
		} `json:"main_branch"`
	}](a.t, w)
	a.tenant = created.Company.ID

	w = a.do(http.MethodPost, "/api/setup/admin", gin.H{
		"name": "Ana", "email": "ana@padaria.com.br", "password": "segredo1",
	}, map[string]string{"tenant-id": a.tenant})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/auth/login", gin.H{
		"email": "ana@padaria.com.br", "password": "segredo1", "tenant_id": a.tenant,
	}, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	a.token = decode[struct {
		AccessToken string `json:"access_token"`
	}](a.t, w).AccessToken
	require.NotEmpty(a.t, a.token)
}

func (a *testAPI) createProduct(name string, price, stock int) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/products", gin.H{
		"name": name, "category": "padaria", "price": price, "stock": stock, "unit": "un",
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID string `json:"id"`
	}](a.t, w).ID
}

type productBody struct {
	Stock decimal.Decimal `json:"stock"`
}

type couponBody struct {
	ID         string `json:"id"`
	Active     bool   `json:"active"`
	UsageCount int    `json:"usage_count"`
	Exhausted  bool   `json:"exhausted"`
}

type entryBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotEmpty(t, decode[apiError](t, w).Error)
}

func TestSetupAdminRequiresTenant(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodPost, "/api/setup/admin", gin.H{
		"name": "Ana", "email": "ana@padaria.com.br", "password": "segredo1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Tenant ID não fornecido", decode[apiError](t, w).Error)
}

func TestSignUpAndLogin(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	w := api.do(http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}](t, w)
	require.Equal(t, "ana@padaria.com.br", me.Email)
	require.Equal(t, "admin", me.Role)

	// O setup deixa de valer depois do primeiro usuário
	w = api.do(http.MethodPost, "/api/setup/admin", gin.H{
		"name": "Outro", "email": "outro@padaria.com.br", "password": "segredo1",
	}, map[string]string{"tenant-id": api.tenant})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "admin_already_exists", decode[apiError](t, w).Code)

	api.token = ""
	w = api.do(http.MethodPost, "/api/auth/login", gin.H{
		"email": "ana@padaria.com.br", "password": "errada", "tenant_id": api.tenant,
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestValidationErrorShape(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	w := api.do(http.MethodPost, "/api/products", gin.H{"name": "Pão", "price": -1}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[apiError](t, w)
	require.NotEmpty(t, body.Error)
	require.Equal(t, "price", body.Details)
	require.Equal(t, "validation", body.Code)
}

func TestCheckoutAppliesCouponAndDeductsStock(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()
	productID := api.createProduct("Pão de queijo", 5, 10)

	w := api.do(http.MethodPost, "/api/coupons", gin.H{
		"code": "bemvindo", "name": "Boas-vindas", "discount_type": "fixed", "discount_value": 2, "max_uses": 1,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cp := decode[couponBody](t, w)

	cart := gin.H{
		"items":          []gin.H{{"product_id": productID, "quantity": 2}},
		"coupon_code":    "BEMVINDO",
		"payment_method": "pix",
	}
	w = api.do(http.MethodPost, "/api/sales", cart, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	receipt := decode[struct {
		Sale struct {
			Subtotal       decimal.Decimal `json:"subtotal"`
			CouponDiscount decimal.Decimal `json:"coupon_discount"`
			Total          decimal.Decimal `json:"total"`
		} `json:"sale"`
	}](t, w)
	require.True(t, receipt.Sale.Subtotal.Equal(decimal.NewFromInt(10)))
	require.True(t, receipt.Sale.CouponDiscount.Equal(decimal.NewFromInt(2)))
	require.True(t, receipt.Sale.Total.Equal(decimal.NewFromInt(8)))

	w = api.do(http.MethodGet, "/api/products/"+productID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, decode[productBody](t, w).Stock.Equal(decimal.NewFromInt(8)))

	w = api.do(http.MethodGet, "/api/coupons/"+cp.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	used := decode[couponBody](t, w)
	require.Equal(t, 1, used.UsageCount)
	require.False(t, used.Active)
	require.True(t, used.Exhausted)

	// Cupom esgotado recusa a venda inteira: o estoque não muda
	w = api.do(http.MethodPost, "/api/sales", cart, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "coupon_inactive", decode[apiError](t, w).Code)

	w = api.do(http.MethodGet, "/api/products/"+productID, nil, nil)
	require.True(t, decode[productBody](t, w).Stock.Equal(decimal.NewFromInt(8)))
}

func TestCheckoutInsufficientStock(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()
	productID := api.createProduct("Bolo", 30, 1)

	w := api.do(http.MethodPost, "/api/sales", gin.H{
		"items":          []gin.H{{"product_id": productID, "quantity": 3}},
		"payment_method": "dinheiro",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[apiError](t, w)
	require.Equal(t, "insufficient_stock", body.Code)

	var shortages []struct {
		ProductID string          `json:"product_id"`
		Required  decimal.Decimal `json:"required"`
		Available decimal.Decimal `json:"available"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &shortages))
	require.Len(t, shortages, 1)
	require.Equal(t, productID, shortages[0].ProductID)
	require.True(t, shortages[0].Required.Equal(decimal.NewFromInt(3)))
	require.True(t, shortages[0].Available.Equal(decimal.NewFromInt(1)))
}

func TestCouponDeleteDeactivates(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	w := api.do(http.MethodPost, "/api/coupons", gin.H{
		"code": "DEZ", "name": "Dez por cento", "discount_type": "percentage", "discount_value": 10,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cp := decode[couponBody](t, w)

	w = api.do(http.MethodPost, "/api/coupons/validate", gin.H{"code": "dez"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/api/coupons/"+cp.ID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, decode[couponBody](t, w).Active)

	w = api.do(http.MethodPost, "/api/coupons/validate", gin.H{"code": "DEZ"}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "coupon_inactive", decode[apiError](t, w).Code)
}

func TestFinancePaymentLifecycle(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	create := func(kind string) entryBody {
		t.Helper()
		w := api.do(http.MethodPost, "/api/financial-entries", gin.H{
			"kind": kind, "amount": 150, "description": "Lançamento " + kind, "due_date": "2099-01-10",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		e := decode[entryBody](t, w)
		require.Equal(t, "pending", e.Status)
		return e
	}
	pay := gin.H{"payment_date": "2098-12-30", "payment_method": "pix"}

	income := create("income")
	w := api.do(http.MethodPost, "/api/financial-entries/"+income.ID+"/pay", pay, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "paid", decode[entryBody](t, w).Status)

	w = api.do(http.MethodPost, "/api/financial-entries/"+income.ID+"/revert", nil, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Equal(t, "revert_income_not_allowed", decode[apiError](t, w).Code)

	expense := create("expense")
	w = api.do(http.MethodPost, "/api/financial-entries/"+expense.ID+"/pay", pay, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPost, "/api/financial-entries/"+expense.ID+"/revert", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "pending", decode[entryBody](t, w).Status)

	w = api.do(http.MethodPost, "/api/financial-entries/"+expense.ID+"/pay", gin.H{"payment_method": "pix"}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "payment_date", decode[apiError](t, w).Details)
}

func TestFinanceExport(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	w := api.do(http.MethodPost, "/api/financial-entries", gin.H{
		"kind": "expense", "amount": 80, "description": "Conta de luz", "due_date": "2099-02-05",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/api/financial-entries/export?format=csv", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	require.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	require.Contains(t, w.Body.String(), "Conta de luz")

	w = api.do(http.MethodGet, "/api/financial-entries/export?format=pdf", nil, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListHugePageReturnsEmptyPage(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()
	api.createProduct("Pão", 5, 10)

	for _, path := range []string{"/api/products", "/api/financial-entries", "/api/coupons"} {
		w := api.do(http.MethodGet, path+"?page=92233720368547758&page_size=100", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		body := decode[struct {
			Items []json.RawMessage `json:"items"`
			Page  int               `json:"page"`
		}](t, w)
		require.Empty(t, body.Items, path)
		require.Positive(t, body.Page, path)
	}
}

func TestInstallmentsRejectsOversizedSeries(t *testing.T) {
	api := newTestAPI(t)
	api.signUp()

	w := api.do(http.MethodPost, "/api/financial-entries/installments", gin.H{
		"kind": "expense", "total": 3610, "description": "Financiamento", "first_due_date": "2099-01-10", "installments": 361,
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = api.do(http.MethodPost, "/api/financial-entries/installments", gin.H{
		"kind": "expense", "total": 360, "description": "Financiamento", "first_due_date": "2099-01-10", "installments": 3,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}
