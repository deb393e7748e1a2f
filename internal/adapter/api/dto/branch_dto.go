package dto

import (
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
)

// AddressRequest representa a estrutura de dados para endereço
type AddressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
}

// ToAddress converte o endereço da requisição para o domínio
func (a AddressRequest) ToAddress() branch.Address {
	return branch.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
		Country:    a.Country,
	}
}

// BranchRequest representa a estrutura de dados para criação/atualização de filial
type BranchRequest struct {
	Name     string         `json:"name" binding:"required"`
	Code     string         `json:"code"`
	Type     string         `json:"type"`
	Document string         `json:"document"`
	Phone    string         `json:"phone"`
	Email    string         `json:"email"`
	Address  AddressRequest `json:"address"`
}

// BranchResponse representa a estrutura de resposta para filial
type BranchResponse struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenant_id"`
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Type      string         `json:"type"`
	Document  string         `json:"document"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   AddressRequest `json:"address"`
	Status    string         `json:"status"`
	IsMain    bool           `json:"is_main"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToBranchResponse converte um modelo de domínio em uma resposta DTO
func ToBranchResponse(b *branch.Branch) BranchResponse {
	return BranchResponse{
		ID:       b.ID,
		TenantID: b.TenantID,
		Name:     b.Name,
		Code:     b.Code,
		Type:     string(b.Type),
		Document: b.Document,
		Phone:    b.Phone,
		Email:    b.Email,
		Address: AddressRequest{
			Street:     b.Address.Street,
			Number:     b.Address.Number,
			Complement: b.Address.Complement,
			District:   b.Address.District,
			City:       b.Address.City,
			State:      b.Address.State,
			ZipCode:    b.Address.ZipCode,
			Country:    b.Address.Country,
		},
		Status:    string(b.Status),
		IsMain:    b.IsMain,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBranchResponses converte uma lista de filiais para o formato de resposta
func ToBranchResponses(branches []*branch.Branch) []BranchResponse {
	out := make([]BranchResponse, len(branches))
	for i, b := range branches {
		out[i] = ToBranchResponse(b)
	}
	return out
}
