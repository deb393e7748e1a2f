package dto

import (
	"github.com/shopspring/decimal"
)

// EntryRequest representa os dados de cadastro e edição de um lançamento
type EntryRequest struct {
	BusinessCategory   string          `json:"business_category"`
	Kind               string          `json:"kind" binding:"required"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description"`
	Notes              string          `json:"notes"`
	DueDate            string          `json:"due_date"`
	IsBoleto           bool            `json:"is_boleto"`
	BoletoCode         string          `json:"boleto_code"`
	IsInstallment      bool            `json:"is_installment"`
	CurrentInstallment int             `json:"current_installment"`
	TotalInstallments  int             `json:"total_installments"`
	PaymentDate        string          `json:"payment_date"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentProof       string          `json:"payment_proof"`
}

// PaymentRequest registra o pagamento de um lançamento
type PaymentRequest struct {
	PaymentDate   string `json:"payment_date"`
	PaymentMethod string `json:"payment_method"`
	PaymentProof  string `json:"payment_proof"`
}

// InstallmentRequest gera uma série de parcelas mensais
type InstallmentRequest struct {
	BusinessCategory string          `json:"business_category"`
	Kind             string          `json:"kind" binding:"required"`
	Total            decimal.Decimal `json:"total"`
	Description      string          `json:"description"`
	FirstDueDate     string          `json:"first_due_date"`
	Installments     int             `json:"installments"`
	IsBoleto         bool            `json:"is_boleto"`
}
