// Package storagetest contém a bateria de testes que todo backend de
// storage.Storage precisa passar.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
)

// Factory cria um armazenamento vazio para um subteste
type Factory func(t *testing.T) storage.Storage

// Run executa a bateria completa contra o backend criado por newStorage
func Run(t *testing.T, newStorage Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Storage)
	}{
		{"companies", testCompanies},
		{"users", testUsers},
		{"tenant isolation", testTenantIsolation},
		{"clients", testClients},
		{"products and stock", testProducts},
		{"coupon usage", testCouponUsage},
		{"financial entries", testFinancialEntries},
		{"sales", testSales},
		{"appointments", testAppointments},
		{"integrations and settings", testIntegrationsAndSettings},
		{"transaction rollback", testRollback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStorage(t)
			t.Cleanup(s.Close)
			tt.fn(t, s)
		})
	}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func tenantID() string {
	return uuid.New().String()
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCompanies(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Companies

	doc := uuid.New().String()[:14]
	c, err := company.NewCompany("Padaria Central", doc, "contato@padaria.com", "", company.CategoryRestaurant, "basic", 2)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	dup, err := company.NewCompany("Outra", doc, "", "", company.CategoryRetail, "basic", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), company.ErrDuplicateCompany)

	found, err := repo.FindByDocument(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
	assert.Equal(t, company.CategoryRestaurant, found.BusinessCategory)

	_, err = repo.FindByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func testUsers(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Users
	tenant := tenantID()

	u, err := user.NewUser(tenant, "", "Ana", "Ana@Example.com", "segredo1", user.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, u))

	again, err := user.NewUser(tenant, "", "Ana 2", "ana@example.com", "segredo2", user.RoleStaff)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, again), user.ErrDuplicateEmail)

	found, err := repo.FindByEmail(ctx, tenant, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, found.CheckPassword("segredo1"))

	n, err := repo.CountByTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testTenantIsolation(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repos := s.Repositories()
	a, b := tenantID(), tenantID()

	c, err := client.NewClient(a, "retail", "Maria", "11999990000", "")
	require.NoError(t, err)
	require.NoError(t, repos.Clients.Create(ctx, c))

	_, err = repos.Clients.FindByID(ctx, b, c.ID)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
	assert.ErrorIs(t, repos.Clients.Delete(ctx, b, c.ID), client.ErrClientNotFound)

	list, err := repos.Clients.List(ctx, b, client.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	stolen := *c
	stolen.TenantID = b
	stolen.Name = "Invasor"
	assert.ErrorIs(t, repos.Clients.Update(ctx, &stolen), client.ErrClientNotFound)

	found, err := repos.Clients.FindByID(ctx, a, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", found.Name)
}

func testClients(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Clients
	tenant := tenantID()

	for _, name := range []string{"Carlos", "Beatriz", "Ana"} {
		c, err := client.NewClient(tenant, "beauty_salon", name, "", "")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, c))
	}

	page, err := repo.List(ctx, tenant, client.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Ana", page[0].Name)
	assert.Equal(t, "Beatriz", page[1].Name)

	n, err := repo.Count(ctx, tenant, client.ListFilter{Search: "ar"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	c := page[0]
	require.NoError(t, c.Update("Ana Paula", "", "", "", "", nil, map[string]string{"pet": "Rex"}))
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.FindByID(ctx, tenant, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", found.Name)
	assert.Equal(t, "Rex", found.Attributes["pet"])
}

func testProducts(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Products
	tenant := tenantID()

	flour, err := product.NewProduct(tenant, "restaurant", "Farinha", "insumos", dec("0"), dec("500"), dec("100"), "g")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, flour))

	pizza, err := product.NewProduct(tenant, "restaurant", "Pizza", "pratos", dec("45.90"), dec("0"), dec("0"), "un")
	require.NoError(t, err)
	require.NoError(t, pizza.SetIngredients([]product.Ingredient{
		{ProductID: flour.ID, Name: "Farinha", UsedQuantity: dec("200"), Unit: "g"},
	}))
	require.NoError(t, repo.Create(ctx, pizza))

	found, err := repo.FindByID(ctx, tenant, pizza.ID)
	require.NoError(t, err)
	require.Len(t, found.Ingredients, 1)
	assert.True(t, found.Ingredients[0].UsedQuantity.Equal(dec("200")))
	assert.True(t, found.Price.Equal(dec("45.90")))

	byID, err := repo.FindByIDs(ctx, tenant, []string{flour.ID, pizza.ID, uuid.New().String()})
	require.NoError(t, err)
	assert.Len(t, byID, 2)

	require.NoError(t, repo.UpdateStock(ctx, tenant, flour.ID, dec("50")))
	low, err := repo.List(ctx, tenant, product.ListFilter{OnlyLowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, flour.ID, low[0].ID)

	err = repo.UpdateStock(ctx, tenantID(), flour.ID, dec("1"))
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	err = s.WithinTx(ctx, func(ctx context.Context, tx storage.Repositories) error {
		locked, err := tx.Products.LockByIDs(ctx, tenant, []string{flour.ID})
		if err != nil {
			return err
		}
		p := locked[flour.ID]
		return tx.Products.UpdateStock(ctx, tenant, p.ID, p.Stock.Sub(dec("10")))
	})
	require.NoError(t, err)

	found, err = repo.FindByID(ctx, tenant, flour.ID)
	require.NoError(t, err)
	assert.True(t, found.Stock.Equal(dec("40")), "estoque %s", found.Stock)
}

func testCouponUsage(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Coupons
	tenant := tenantID()

	c, err := coupon.NewCoupon(tenant, "retail", "promo10", "Promo", coupon.CampaignTotalPurchase,
		coupon.DiscountPercentage, dec("10"), dec("0"), nil, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	dup, err := coupon.NewCoupon(tenant, "retail", "PROMO10", "Outra", coupon.CampaignTotalPurchase,
		coupon.DiscountFixed, dec("5"), dec("0"), nil, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), coupon.ErrDuplicateCode)

	byCode, err := repo.FindByCode(ctx, tenant, " Promo10 ")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byCode.ID)

	require.NoError(t, repo.IncrementUsage(ctx, tenant, c.ID))
	require.NoError(t, repo.IncrementUsage(ctx, tenant, c.ID))
	err = repo.IncrementUsage(ctx, tenant, c.ID)
	assert.True(t, errors.Is(err, coupon.ErrExhausted) || errors.Is(err, coupon.ErrInactive), "erro %v", err)

	found, err := repo.FindByID(ctx, tenant, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.UsageCount)
	assert.False(t, found.Active)

	active, err := repo.List(ctx, tenant, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func testFinancialEntries(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().FinancialEntries
	tenant := tenantID()
	ref := now()

	later, err := finance.NewEntry(tenant, "retail", finance.KindExpense, dec("200"), "Aluguel", ref.AddDate(0, 0, 20), ref)
	require.NoError(t, err)
	sooner, err := finance.NewEntry(tenant, "retail", finance.KindIncome, dec("80.50"), "Venda a prazo", ref.AddDate(0, 0, 2), ref)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, sooner))

	list, err := repo.List(ctx, tenant, finance.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sooner.ID, list[0].ID)

	expenses, err := repo.List(ctx, tenant, finance.ListFilter{Kind: finance.KindExpense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)

	require.NoError(t, later.MarkPaid(ref, "pix", "comprovante.pdf", ref))
	require.NoError(t, repo.Update(ctx, later))

	found, err := repo.FindByID(ctx, tenant, later.ID)
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPaid, found.Status)
	require.NotNil(t, found.PaymentDate)
	assert.True(t, found.PaymentDate.Equal(ref))
	assert.Equal(t, "pix", found.PaymentMethod)

	require.NoError(t, repo.Delete(ctx, tenant, later.ID))
	_, err = repo.FindByID(ctx, tenant, later.ID)
	assert.ErrorIs(t, err, finance.ErrEntryNotFound)
}

func testSales(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Sales
	tenant := tenantID()

	item, err := sale.NewCartItem(uuid.New().String(), "Shampoo", 2, dec("19.90"))
	require.NoError(t, err)
	sl, err := sale.NewSale(tenant, "beauty_salon", "", "", []sale.CartItem{item}, dec("0"), "cash", now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, sl))

	found, err := repo.FindByID(ctx, tenant, sl.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.True(t, found.Total.Equal(dec("39.80")))

	list, err := repo.List(ctx, tenant, sale.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testAppointments(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repo := s.Repositories().Appointments
	tenant := tenantID()
	start := now().Add(30 * time.Minute)

	a, err := appointment.NewAppointment(tenant, "pet_clinic", "", "Rex", "Vacina", start, start.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	pending, err := repo.PendingReminders(ctx, tenant, now())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.True(t, pending[0].ReminderAt.Equal(start.Add(-appointment.ReminderLeadTime)))

	a.MarkReminderSent(now())
	require.NoError(t, repo.Update(ctx, a))

	pending, err = repo.PendingReminders(ctx, tenant, now())
	require.NoError(t, err)
	assert.Empty(t, pending)

	from := start.Add(-time.Minute)
	list, err := repo.List(ctx, tenant, &from, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func testIntegrationsAndSettings(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	repos := s.Repositories()
	tenant := tenantID()

	i, err := integration.NewIntegration(tenant, integration.ProviderGoogle, true, []byte(`{"calendar":"primary"}`))
	require.NoError(t, err)
	require.NoError(t, repos.Integrations.Create(ctx, i))

	dup, err := integration.NewIntegration(tenant, integration.ProviderGoogle, false, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, repos.Integrations.Create(ctx, dup), integration.ErrDuplicateProvider)

	found, err := repos.Integrations.FindByID(ctx, tenant, i.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"calendar":"primary"}`, string(found.Settings))

	ns := notification.NewSettings(tenant)
	require.NoError(t, repos.NotificationSettings.Create(ctx, ns))
	assert.ErrorIs(t, repos.NotificationSettings.Create(ctx, notification.NewSettings(tenant)), notification.ErrDuplicateSettings)

	byTenant, err := repos.NotificationSettings.FindByTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, ns.ID, byTenant.ID)

	_, err = repos.NotificationSettings.FindByTenant(ctx, tenantID())
	assert.ErrorIs(t, err, notification.ErrSettingsNotFound)
}

func testRollback(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	tenant := tenantID()
	boom := errors.New("falha no meio da transação")

	p, err := product.NewProduct(tenant, "retail", "Caneta", "papelaria", dec("2.50"), dec("10"), dec("0"), "un")
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Products.Create(ctx, p))

	err = s.WithinTx(ctx, func(ctx context.Context, tx storage.Repositories) error {
		if err := tx.Products.UpdateStock(ctx, tenant, p.ID, dec("3")); err != nil {
			return err
		}
		c, err := client.NewClient(tenant, "retail", "Fantasma", "", "")
		if err != nil {
			return err
		}
		if err := tx.Clients.Create(ctx, c); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := s.Repositories().Products.FindByID(ctx, tenant, p.ID)
	require.NoError(t, err)
	assert.True(t, found.Stock.Equal(dec("10")))

	n, err := s.Repositories().Clients.Count(ctx, tenant, client.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}
