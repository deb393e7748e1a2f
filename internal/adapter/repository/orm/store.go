// Package orm implementa o armazenamento sobre gorm, usado com SQLite em
// instalações de uma única máquina ou com Postgres via driver do gorm.
package orm

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

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
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
)

// Models lista as entidades persistidas, na ordem usada pelo AutoMigrate
func Models() []any {
	return []any{
		&company.Company{},
		&branch.Branch{},
		&user.User{},
		&client.Client{},
		&product.Product{},
		&sale.Sale{},
		&coupon.Coupon{},
		&finance.Entry{},
		&appointment.Appointment{},
		&integration.Integration{},
		&notification.Settings{},
		&transfer.Transfer{},
		&messaging.Message{},
	}
}

// AutoMigrate cria ou atualiza as tabelas de todas as entidades
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Store implementa storage.Storage sobre uma conexão gorm.
// A conexão deve ser aberta com TranslateError para que chaves únicas
// violadas cheguem como gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

// New cria o armazenamento gorm
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ storage.Storage = (*Store)(nil)

// Repositories implementa storage.Storage
func (s *Store) Repositories() storage.Repositories {
	return repositories(s.db)
}

// WithinTx implementa storage.Storage
func (s *Store) WithinTx(ctx context.Context, fn storage.TxFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, repositories(tx))
	})
}

// Driver implementa storage.Storage
func (s *Store) Driver() storage.Driver { return storage.DriverGorm }

// Ping implementa storage.Storage
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return shared.Unavailable("obter conexão", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return shared.Unavailable("ping no banco", err)
	}
	return nil
}

// Close implementa storage.Storage
func (s *Store) Close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func repositories(db *gorm.DB) storage.Repositories {
	return storage.Repositories{
		Companies:            &companyRepo{db},
		Branches:             &branchRepo{db},
		Users:                &userRepo{db},
		Clients:              &clientRepo{db},
		Products:             &productRepo{db},
		Sales:                &saleRepo{db},
		Coupons:              &couponRepo{db},
		FinancialEntries:     &entryRepo{db},
		Appointments:         &appointmentRepo{db},
		Integrations:         &integrationRepo{db},
		NotificationSettings: &notificationRepo{db},
		Transfers:            &transferRepo{db},
		Messages:             &messageRepo{db},
	}
}

// wrap converte falhas de conexão em indisponibilidade e anota as demais
func wrap(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return shared.Unavailable(op, err)
	}
	return fmt.Errorf("erro ao %s: %w", op, err)
}

const byTenantAndID = "tenant_id = ? AND id = ?"

func first[T any](ctx context.Context, db *gorm.DB, notFound error, query string, args ...any) (*T, error) {
	var v T
	err := db.WithContext(ctx).Where(query, args...).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, wrap("buscar registro", err)
	}
	return &v, nil
}

func create(ctx context.Context, db *gorm.DB, v any, duplicate error) error {
	err := db.WithContext(ctx).Create(v).Error
	if duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	if err != nil {
		return wrap("inserir registro", err)
	}
	return nil
}

// save grava todas as colunas de v, desde que a linha pertença ao tenant
func save(ctx context.Context, db *gorm.DB, v any, tenantID, id string, notFound, duplicate error) error {
	res := db.WithContext(ctx).Model(v).Where(byTenantAndID, tenantID, id).Select("*").Updates(v)
	if duplicate != nil && errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	if res.Error != nil {
		return wrap("atualizar registro", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func remove[T any](ctx context.Context, db *gorm.DB, tenantID, id string, notFound error) error {
	res := db.WithContext(ctx).Where(byTenantAndID, tenantID, id).Delete(new(T))
	if res.Error != nil {
		return wrap("remover registro", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func paged(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}
	return db
}

// forUpdate adiciona SELECT ... FOR UPDATE quando o dialeto suporta;
// o SQLite já serializa as transações de escrita.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
