package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
)

const tenantID = "tenant-1"

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newStore(t *testing.T) storage.Storage {
	t.Helper()
	s := memory.New()
	t.Cleanup(s.Close)
	return s
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, s storage.Storage, name, category, price, stock string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(tenantID, "restaurant", name, category, dec(price), dec(stock), decimal.Zero, "un")
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Products.Create(context.Background(), p))
	return p
}

func stockOf(t *testing.T, s storage.Storage, id string) decimal.Decimal {
	t.Helper()
	p, err := s.Repositories().Products.FindByID(context.Background(), tenantID, id)
	require.NoError(t, err)
	return p.Stock
}

type sentMessage struct {
	channel messaging.Channel
	to      string
	body    string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, channel messaging.Channel, to, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentMessage{channel: channel, to: to, body: body})
	return "SM" + to, nil
}

type fakeNotifier struct {
	chats []string
	texts []string
	err   error
}

func (f *fakeNotifier) Notify(_ context.Context, chatID, text string) error {
	if f.err != nil {
		return f.err
	}
	f.chats = append(f.chats, chatID)
	f.texts = append(f.texts, text)
	return nil
}
