package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProduct     = shared.Validation("product_id", "produto é obrigatório")
	ErrEmptyBranches    = shared.Validation("from_branch_id", "filiais de origem e destino são obrigatórias")
	ErrSameBranch       = shared.Validation("to_branch_id", "origem e destino devem ser filiais diferentes")
	ErrInvalidQuantity  = shared.Validation("quantity", "quantidade deve ser maior que zero")
	ErrNotPending       = shared.BusinessRule("transfer_not_pending", "transferência já foi finalizada")
	ErrTransferNotFound = shared.NotFound("transferência não encontrada")
)

// Status representa a situação da transferência
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Transfer representa o envio de mercadoria entre filiais do mesmo tenant
type Transfer struct {
	ID           string          `json:"id" gorm:"primaryKey;size:36"`
	TenantID     string          `json:"tenant_id" gorm:"size:36;index"`
	FromBranchID string          `json:"from_branch_id"`
	ToBranchID   string          `json:"to_branch_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3)"`
	Status       Status          `json:"status"`
	Notes        string          `json:"notes"`
	CompletedAt  *time.Time      `json:"completed_at"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewTransfer cria uma transferência pendente
func NewTransfer(tenantID, fromBranchID, toBranchID, productID, productName string, quantity decimal.Decimal, notes string) (*Transfer, error) {
	if productID == "" {
		return nil, ErrEmptyProduct
	}
	if fromBranchID == "" || toBranchID == "" {
		return nil, ErrEmptyBranches
	}
	if fromBranchID == toBranchID {
		return nil, ErrSameBranch
	}
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	return &Transfer{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		FromBranchID: fromBranchID,
		ToBranchID:   toBranchID,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		Status:       StatusPending,
		Notes:        notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Update altera quantidade e observações enquanto pendente
func (t *Transfer) Update(quantity decimal.Decimal, notes string) error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	if !quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	t.Quantity = quantity
	t.Notes = notes
	t.UpdatedAt = time.Now()
	return nil
}

// Complete marca a transferência como recebida no destino
func (t *Transfer) Complete(at time.Time) error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	t.Status = StatusCompleted
	t.CompletedAt = &at
	t.UpdatedAt = at
	return nil
}

// Cancel cancela uma transferência pendente
func (t *Transfer) Cancel() error {
	if t.Status != StatusPending {
		return ErrNotPending
	}
	t.Status = StatusCancelled
	t.UpdatedAt = time.Now()
	return nil
}
