package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/finance"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

// EntryInput são os dados de cadastro e edição de um lançamento
type EntryInput struct {
	BusinessCategory   string
	Kind               finance.Kind
	Amount             decimal.Decimal
	Description        string
	Notes              string
	DueDate            time.Time
	IsBoleto           bool
	BoletoCode         string
	IsInstallment      bool
	CurrentInstallment int
	TotalInstallments  int
	PaymentDate        *time.Time
	PaymentMethod      string
	PaymentProof       string
}

// InstallmentInput descreve uma série de parcelas mensais
type InstallmentInput struct {
	BusinessCategory string
	Kind             finance.Kind
	Total            decimal.Decimal
	Description      string
	FirstDue         time.Time
	Count            int
	IsBoleto         bool
}

// EntryFilter combina o filtro do repositório com o status derivado
type EntryFilter struct {
	finance.ListFilter
	Status finance.Status
}

// FinanceService cuida do ciclo de vida dos lançamentos financeiros.
// Toda leitura passa por resolve, que recalcula o status pela data.
type FinanceService struct {
	store storage.Storage
	log   logger.Logger
	now   Clock
}

// NewFinanceService cria o serviço; clock nulo usa time.Now
func NewFinanceService(store storage.Storage, log logger.Logger, clock Clock) *FinanceService {
	return &FinanceService{store: store, log: log, now: clockOrNow(clock)}
}

func (s *FinanceService) resolve(entries ...*finance.Entry) {
	now := s.now()
	for _, e := range entries {
		e.Refresh(now)
	}
}

// Create cadastra um lançamento, opcionalmente já pago
func (s *FinanceService) Create(ctx context.Context, tenantID string, in EntryInput) (*finance.Entry, error) {
	now := s.now()
	e, err := finance.NewEntry(tenantID, in.BusinessCategory, in.Kind, in.Amount, in.Description, in.DueDate, now)
	if err != nil {
		return nil, err
	}
	e.Notes = strings.TrimSpace(in.Notes)
	if in.IsBoleto {
		e.SetBoleto(in.BoletoCode)
	}
	if in.IsInstallment {
		if err := e.SetInstallment(in.CurrentInstallment, in.TotalInstallments); err != nil {
			return nil, err
		}
	}
	if in.PaymentDate != nil {
		if err := e.MarkPaid(*in.PaymentDate, in.PaymentMethod, in.PaymentProof, now); err != nil {
			return nil, err
		}
	}

	if err := s.store.Repositories().FinancialEntries.Create(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info("Lançamento criado", "tenant_id", tenantID, "entry_id", e.ID, "kind", e.Kind)
	return e, nil
}

// CreateInstallments cria todas as parcelas de uma vez ou nenhuma
func (s *FinanceService) CreateInstallments(ctx context.Context, tenantID string, in InstallmentInput) ([]*finance.Entry, error) {
	entries, err := finance.NewInstallmentPlan(
		tenantID, in.BusinessCategory, in.Kind, in.Total, in.Description, in.FirstDue, in.Count, s.now(),
	)
	if err != nil {
		return nil, err
	}
	if in.IsBoleto {
		for _, e := range entries {
			e.SetBoleto("")
		}
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		for _, e := range entries {
			if err := repos.FinancialEntries.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Parcelas criadas", "tenant_id", tenantID, "count", len(entries))
	return entries, nil
}

// Get busca um lançamento com o status atualizado
func (s *FinanceService) Get(ctx context.Context, tenantID, id string) (*finance.Entry, error) {
	e, err := s.store.Repositories().FinancialEntries.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	s.resolve(e)
	return e, nil
}

// List lista os lançamentos com o status atualizado. O filtro de status é
// aplicado depois da resolução, pois o status gravado pode estar desatualizado;
// nesse caso a paginação também é feita aqui.
func (s *FinanceService) List(ctx context.Context, tenantID string, filter EntryFilter) ([]*finance.Entry, error) {
	repoFilter := filter.ListFilter
	if filter.Status != "" {
		repoFilter.Limit, repoFilter.Offset = 0, 0
	}

	entries, err := s.store.Repositories().FinancialEntries.List(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}
	s.resolve(entries...)

	if filter.Status == "" {
		return entries, nil
	}
	matched := make([]*finance.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Status == filter.Status {
			matched = append(matched, e)
		}
	}
	return page(matched, filter.Limit, filter.Offset), nil
}

// Update altera os dados editáveis; pagamento só muda por MarkPaid e RevertPayment
func (s *FinanceService) Update(ctx context.Context, tenantID, id string, in EntryInput) (*finance.Entry, error) {
	var updated *finance.Entry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		e, err := repos.FinancialEntries.FindByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := e.Update(in.Kind, in.Amount, in.Description, in.Notes, in.DueDate, s.now()); err != nil {
			return err
		}
		e.IsBoleto = in.IsBoleto
		e.BoletoCode = ""
		if in.IsBoleto {
			e.SetBoleto(in.BoletoCode)
		}
		if in.IsInstallment {
			if err := e.SetInstallment(in.CurrentInstallment, in.TotalInstallments); err != nil {
				return err
			}
		} else {
			e.IsInstallment, e.CurrentInstallment, e.TotalInstallments = false, 0, 0
		}
		if in.BusinessCategory != "" {
			e.BusinessCategory = in.BusinessCategory
		}
		if err := repos.FinancialEntries.Update(ctx, e); err != nil {
			return err
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// MarkPaid registra o pagamento. Repetir o pagamento substitui os dados anteriores.
func (s *FinanceService) MarkPaid(ctx context.Context, tenantID, id string, paymentDate time.Time, method, proof string) (*finance.Entry, error) {
	return s.transition(ctx, tenantID, id, func(e *finance.Entry) error {
		return e.MarkPaid(paymentDate, method, proof, s.now())
	})
}

// RevertPayment desfaz o pagamento de uma despesa
func (s *FinanceService) RevertPayment(ctx context.Context, tenantID, id string) (*finance.Entry, error) {
	return s.transition(ctx, tenantID, id, func(e *finance.Entry) error {
		return e.RevertPayment(s.now())
	})
}

func (s *FinanceService) transition(ctx context.Context, tenantID, id string, apply func(*finance.Entry) error) (*finance.Entry, error) {
	var out *finance.Entry
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		e, err := repos.FinancialEntries.FindByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := apply(e); err != nil {
			return err
		}
		if err := repos.FinancialEntries.Update(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Pagamento atualizado", "tenant_id", tenantID, "entry_id", id, "status", out.Status)
	return out, nil
}

// Delete exclui definitivamente o lançamento
func (s *FinanceService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.Repositories().FinancialEntries.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.log.Info("Lançamento excluído", "tenant_id", tenantID, "entry_id", id)
	return nil
}

// Summary consolida os lançamentos com vencimento no intervalo
func (s *FinanceService) Summary(ctx context.Context, tenantID string, from, to *time.Time) (finance.Summary, error) {
	entries, err := s.List(ctx, tenantID, EntryFilter{ListFilter: finance.ListFilter{DueFrom: from, DueTo: to}})
	if err != nil {
		return finance.Summary{}, err
	}
	return finance.Summarize(entries), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
