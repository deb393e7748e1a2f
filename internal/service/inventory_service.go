package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/product"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/transfer"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// InventoryService faz os ajustes manuais de estoque e as transferências entre filiais
type InventoryService struct {
	store storage.Storage
	log   logger.Logger
	now   Clock
}

// NewInventoryService cria o serviço; clock nulo usa time.Now
func NewInventoryService(store storage.Storage, log logger.Logger, clock Clock) *InventoryService {
	return &InventoryService{store: store, log: log, now: clockOrNow(clock)}
}

// AdjustStock soma delta (positivo ou negativo) ao estoque; o resultado nunca fica negativo
func (s *InventoryService) AdjustStock(ctx context.Context, tenantID, productID string, delta decimal.Decimal) (*product.Product, error) {
	var out *product.Product
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		locked, err := repos.Products.LockByIDs(ctx, tenantID, []string{productID})
		if err != nil {
			return err
		}
		p, ok := locked[productID]
		if !ok {
			return product.ErrProductNotFound
		}
		if err := p.AdjustStock(delta, s.now()); err != nil {
			return err
		}
		if err := repos.Products.UpdateStock(ctx, tenantID, p.ID, p.Stock); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Estoque ajustado", "tenant_id", tenantID, "product_id", productID, "delta", delta.String(), "stock", out.Stock.String())
	return out, nil
}

// CreateTransfer registra uma transferência pendente entre duas filiais do tenant
func (s *InventoryService) CreateTransfer(ctx context.Context, tenantID, fromBranchID, toBranchID, productID string, quantity decimal.Decimal, notes string) (*transfer.Transfer, error) {
	repos := s.store.Repositories()
	p, err := repos.Products.FindByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	t, err := transfer.NewTransfer(tenantID, fromBranchID, toBranchID, p.ID, p.Name, quantity, notes)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{fromBranchID, toBranchID} {
		if _, err := repos.Branches.FindByID(ctx, tenantID, id); err != nil {
			return nil, err
		}
	}
	if err := repos.Transfers.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteTransfer conclui a transferência; o estoque é único por produto e não muda
func (s *InventoryService) CompleteTransfer(ctx context.Context, tenantID, id string) (*transfer.Transfer, error) {
	return s.transition(ctx, tenantID, id, func(t *transfer.Transfer) error { return t.Complete(s.now()) })
}

// CancelTransfer cancela uma transferência pendente
func (s *InventoryService) CancelTransfer(ctx context.Context, tenantID, id string) (*transfer.Transfer, error) {
	return s.transition(ctx, tenantID, id, func(t *transfer.Transfer) error { return t.Cancel() })
}

func (s *InventoryService) transition(ctx context.Context, tenantID, id string, apply func(*transfer.Transfer) error) (*transfer.Transfer, error) {
	var out *transfer.Transfer
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		t, err := repos.Transfers.FindByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := apply(t); err != nil {
			return err
		}
		if err := repos.Transfers.Update(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
