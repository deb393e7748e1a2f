package dto

import (
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
)

// CompanyRequest representa os dados de cadastro de uma empresa
type CompanyRequest struct {
	Name             string `json:"name" binding:"required"`
	Document         string `json:"document" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	BusinessCategory string `json:"business_category"`
	PlanType         string `json:"plan_type"`
	MaxBranches      int    `json:"max_branches"`
}

// CompanyUpdateRequest representa os dados editáveis da empresa logada
type CompanyUpdateRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	BusinessCategory string `json:"business_category"`
}

// SignUpResponse é a resposta do cadastro de empresa
type SignUpResponse struct {
	Company    *company.Company `json:"company"`
	MainBranch BranchResponse   `json:"main_branch"`
}
