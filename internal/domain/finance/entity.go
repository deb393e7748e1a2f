package finance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDescription   = shared.Validation("description", "descrição não pode ser vazia")
	ErrInvalidAmount      = shared.Validation("amount", "valor deve ser maior que zero")
	ErrInvalidKind        = shared.Validation("kind", "tipo deve ser income ou expense")
	ErrEmptyDueDate       = shared.Validation("due_date", "data de vencimento é obrigatória")
	ErrEmptyPaymentDate   = shared.Validation("payment_date", "data de pagamento é obrigatória")
	ErrEmptyPaymentMethod = shared.Validation("payment_method", "forma de pagamento é obrigatória")
	ErrInvalidInstallment = shared.Validation("installment", "parcelas devem ficar entre 1 e 360 e a atual não pode passar do total")
	ErrNotPaid            = shared.Validation("status", "lançamento não está pago")
	ErrRevertIncome       = shared.BusinessRule("revert_income_not_allowed", "estorno disponível apenas para despesas")
	ErrEntryNotFound      = shared.NotFound("lançamento financeiro não encontrado")
)

// Kind indica se o lançamento é receita ou despesa
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid verifica se o tipo é conhecido
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Status representa a situação do lançamento
type Status string

const (
	StatusPending Status = "pending"
	StatusNearDue Status = "near_due"
	StatusOverdue Status = "overdue"
	StatusPaid    Status = "paid"
)

// NearDueWindow é a antecedência a partir da qual um lançamento fica "a vencer"
const NearDueWindow = 7 * 24 * time.Hour

// Entry representa um lançamento financeiro agendado (conta a pagar ou a receber)
type Entry struct {
	ID                 string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID           string          `json:"tenant_id" gorm:"size:36;index"`
	BusinessCategory   string          `json:"business_category"`
	Kind               Kind            `json:"kind"`
	Amount             decimal.Decimal `json:"amount" gorm:"type:numeric(14,2)"`
	Description        string          `json:"description"`
	Notes              string          `json:"notes"`
	DueDate            time.Time       `json:"due_date"`
	PaymentDate        *time.Time      `json:"payment_date"`
	Status             Status          `json:"status"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentProof       string          `json:"payment_proof"`
	IsBoleto           bool            `json:"is_boleto"`
	BoletoCode         string          `json:"boleto_code"`
	IsInstallment      bool            `json:"is_installment"`
	CurrentInstallment int             `json:"current_installment"`
	TotalInstallments  int             `json:"total_installments"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName define a tabela usada pelo backend gorm
func (Entry) TableName() string { return "financial_entries" }

// NewEntry cria um lançamento com status derivado da data de vencimento
func NewEntry(
	tenantID, businessCategory string,
	kind Kind,
	amount decimal.Decimal,
	description string,
	dueDate time.Time,
	now time.Time,
) (*Entry, error) {
	e := &Entry{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		BusinessCategory: businessCategory,
		Kind:             kind,
		Amount:           amount,
		Description:      strings.TrimSpace(description),
		DueDate:          dueDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	e.Status = ResolveStatus(e, now)
	return e, nil
}

func (e *Entry) validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if e.DueDate.IsZero() {
		return ErrEmptyDueDate
	}
	if e.IsInstallment && (e.CurrentInstallment < 1 || e.CurrentInstallment > e.TotalInstallments) {
		return ErrInvalidInstallment
	}
	return nil
}

// SetBoleto marca o lançamento como boleto, com código opcional
func (e *Entry) SetBoleto(code string) {
	e.IsBoleto = true
	e.BoletoCode = strings.TrimSpace(code)
}

// MaxInstallments limita as séries a 30 anos de parcelas mensais
const MaxInstallments = 360

// SetInstallment marca o lançamento como parcela current de total
func (e *Entry) SetInstallment(current, total int) error {
	if current < 1 || current > total || total > MaxInstallments {
		return ErrInvalidInstallment
	}
	e.IsInstallment = true
	e.CurrentInstallment = current
	e.TotalInstallments = total
	return nil
}

// Update altera os dados editáveis; o status é recalculado exceto quando pago
func (e *Entry) Update(
	kind Kind,
	amount decimal.Decimal,
	description, notes string,
	dueDate time.Time,
	now time.Time,
) error {
	updated := *e
	updated.Kind = kind
	updated.Amount = amount
	updated.Description = strings.TrimSpace(description)
	updated.Notes = notes
	updated.DueDate = dueDate
	if err := updated.validate(); err != nil {
		return err
	}
	updated.UpdatedAt = now
	*e = updated
	e.Refresh(now)
	return nil
}

// IsPaid indica se existe pagamento registrado
func (e *Entry) IsPaid() bool {
	return e.Status == StatusPaid
}

// ResolveStatus deriva o status do lançamento para o instante now.
// Um lançamento pago permanece pago independentemente da data.
// Vencimento alcançado (inclusive no instante exato) é atraso; vencimento
// dentro de NearDueWindow, inclusive o limite, é "a vencer".
func ResolveStatus(e *Entry, now time.Time) Status {
	if e.Status == StatusPaid {
		return StatusPaid
	}
	if !e.DueDate.After(now) {
		return StatusOverdue
	}
	if !e.DueDate.After(now.Add(NearDueWindow)) {
		return StatusNearDue
	}
	return StatusPending
}

// Refresh recalcula o status derivado de datas
func (e *Entry) Refresh(now time.Time) {
	e.Status = ResolveStatus(e, now)
}

// MarkPaid registra o pagamento. Um lançamento já pago pode ser pago de novo:
// os dados do pagamento anterior são substituídos.
func (e *Entry) MarkPaid(paymentDate time.Time, method, proof string, now time.Time) error {
	if paymentDate.IsZero() {
		return ErrEmptyPaymentDate
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return ErrEmptyPaymentMethod
	}

	date := paymentDate
	e.PaymentDate = &date
	e.PaymentMethod = method
	e.PaymentProof = strings.TrimSpace(proof)
	e.Status = StatusPaid
	e.UpdatedAt = now
	return nil
}

// RevertPayment desfaz o pagamento de uma despesa e volta ao status derivado da data
func (e *Entry) RevertPayment(now time.Time) error {
	if !e.IsPaid() {
		return ErrNotPaid
	}
	if e.Kind != KindExpense {
		return ErrRevertIncome
	}

	e.PaymentDate = nil
	e.PaymentMethod = ""
	e.PaymentProof = ""
	e.Status = StatusPending
	e.Refresh(now)
	e.UpdatedAt = now
	return nil
}
