// Package memory implementa o armazenamento em mapas protegidos por mutex,
// usado em desenvolvimento e nos testes.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/appointment"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/client"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/coupon"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/integration"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/messaging"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/notification"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/sale"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
)

// Store guarda todos os agregados em memória.
// WithinTx segura o lock de escrita durante toda a função e restaura o
// estado anterior se ela falhar; dentro dela use apenas os repositórios recebidos.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

type dataset struct {
	companies     table[company.Company]
	branches      table[branch.Branch]
	users         table[user.User]
	clients       table[client.Client]
	products      table[product.Product]
	sales         table[sale.Sale]
	coupons       table[coupon.Coupon]
	entries       table[finance.Entry]
	appointments  table[appointment.Appointment]
	integrations  table[integration.Integration]
	notifications table[notification.Settings]
	transfers     table[transfer.Transfer]
	messages      table[messaging.Message]
}

// New cria um armazenamento vazio
func New() *Store {
	return &Store{data: &dataset{
		companies:     newTable[company.Company](nil),
		branches:      newTable[branch.Branch](nil),
		users:         newTable[user.User](nil),
		clients:       newTable(cloneClient),
		products:      newTable(cloneProduct),
		sales:         newTable(cloneSale),
		coupons:       newTable(cloneCoupon),
		entries:       newTable[finance.Entry](nil),
		appointments:  newTable[appointment.Appointment](nil),
		integrations:  newTable(cloneIntegration),
		notifications: newTable[notification.Settings](nil),
		transfers:     newTable[transfer.Transfer](nil),
		messages:      newTable[messaging.Message](nil),
	}}
}

var _ storage.Storage = (*Store)(nil)

// Repositories implementa storage.Storage
func (s *Store) Repositories() storage.Repositories {
	return s.repos(false)
}

// WithinTx implementa storage.Storage
func (s *Store) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.snapshot()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Driver implementa storage.Storage
func (s *Store) Driver() storage.Driver { return storage.DriverMemory }

// Ping implementa storage.Storage
func (s *Store) Ping(context.Context) error { return nil }

// Close implementa storage.Storage
func (s *Store) Close() {}

func (s *Store) repos(inTx bool) storage.Repositories {
	b := base{s: s, inTx: inTx}
	return storage.Repositories{
		Companies:            &companyRepo{b},
		Branches:             &branchRepo{b},
		Users:                &userRepo{b},
		Clients:              &clientRepo{b},
		Products:             &productRepo{b},
		Sales:                &saleRepo{b},
		Coupons:              &couponRepo{b},
		FinancialEntries:     &entryRepo{b},
		Appointments:         &appointmentRepo{b},
		Integrations:         &integrationRepo{b},
		NotificationSettings: &notificationRepo{b},
		Transfers:            &transferRepo{b},
		Messages:             &messageRepo{b},
	}
}

// base decide se o repositório precisa adquirir o lock ou se já está em transação
type base struct {
	s    *Store
	inTx bool
}

func (b base) read(fn func(d *dataset)) {
	if !b.inTx {
		b.s.mu.RLock()
		defer b.s.mu.RUnlock()
	}
	fn(b.s.data)
}

func (b base) write(fn func(d *dataset) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.data)
}

func (d *dataset) snapshot() *dataset {
	return &dataset{
		companies:     d.companies.copy(),
		branches:      d.branches.copy(),
		users:         d.users.copy(),
		clients:       d.clients.copy(),
		products:      d.products.copy(),
		sales:         d.sales.copy(),
		coupons:       d.coupons.copy(),
		entries:       d.entries.copy(),
		appointments:  d.appointments.copy(),
		integrations:  d.integrations.copy(),
		notifications: d.notifications.copy(),
		transfers:     d.transfers.copy(),
		messages:      d.messages.copy(),
	}
}

// table guarda cópias dos registros; quem lê recebe outra cópia, então
// nenhum chamador altera o estado armazenado sem passar pelo repositório.
type table[T any] struct {
	rows  map[string]*T
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) table[T] {
	if clone == nil {
		clone = func(v *T) *T {
			c := *v
			return &c
		}
	}
	return table[T]{rows: make(map[string]*T), clone: clone}
}

func (t table[T]) copy() table[T] {
	rows := make(map[string]*T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return table[T]{rows: rows, clone: t.clone}
}

func (t table[T]) put(id string, v *T) {
	t.rows[id] = t.clone(v)
}

func (t table[T]) get(id string) (*T, bool) {
	v, ok := t.rows[id]
	if !ok {
		return nil, false
	}
	return t.clone(v), true
}

func (t table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t table[T]) remove(id string) {
	delete(t.rows, id)
}

// filter devolve cópias dos registros que satisfazem keep, ordenadas por less
func (t table[T]) filter(keep func(*T) bool, less func(a, b *T) bool) []*T {
	out := make([]*T, 0)
	for _, v := range t.rows {
		if keep(v) {
			out = append(out, t.clone(v))
		}
	}
	if less != nil {
		sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func paginate[T any](items []*T, limit, offset int) []*T {
	if offset > 0 {
		if offset >= len(items) {
			return []*T{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
