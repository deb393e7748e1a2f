// Package storage define o contrato único de persistência, implementado pelos
// backends em memória, pgx e gorm.
package storage

import (
	"context"
	"fmt"

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
)

// Driver identifica o backend de armazenamento
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
	DriverGorm     Driver = "gorm"
)

// ParseDriver valida o nome do backend vindo da configuração
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(name); d {
	case DriverMemory, DriverPostgres, DriverGorm:
		return d, nil
	}
	return "", fmt.Errorf("driver de armazenamento desconhecido: %q", name)
}

// Repositories agrupa os repositórios de todos os agregados
type Repositories struct {
	Companies            company.Repository
	Branches             branch.Repository
	Users                user.Repository
	Clients              client.Repository
	Products             product.Repository
	Sales                sale.Repository
	Coupons              coupon.Repository
	FinancialEntries     finance.Repository
	Appointments         appointment.Repository
	Integrations         integration.Repository
	NotificationSettings notification.Repository
	Transfers            transfer.Repository
	Messages             messaging.Repository
}

// TxFunc é executada dentro de uma transação com repositórios transacionais
type TxFunc func(ctx context.Context, repos Repositories) error

// Storage é o contrato comum aos três backends
type Storage interface {
	// Repositories devolve os repositórios fora de transação
	Repositories() Repositories

	// WithinTx executa fn de forma atômica: se fn falhar nada é gravado
	WithinTx(ctx context.Context, fn TxFunc) error

	// Driver identifica o backend
	Driver() Driver

	// Ping verifica a conectividade com o backend
	Ping(ctx context.Context) error

	// Close libera os recursos do backend
	Close()
}
