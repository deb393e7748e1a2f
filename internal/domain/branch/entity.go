package branch

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrEmptyName       = shared.Validation("name", "nome não pode ser vazio")
	ErrEmptyTenantID   = shared.Validation("tenant_id", "ID do tenant não pode ser vazio")
	ErrInvalidType     = shared.Validation("type", "tipo de filial inválido")
	ErrBranchNotFound  = shared.NotFound("filial não encontrada")
	ErrBranchNotActive = shared.BusinessRule("branch_not_active", "filial não está ativa")
	ErrBranchLimit     = shared.BusinessRule("branch_limit_reached", "limite de filiais do plano atingido")
	ErrMainBranch      = shared.BusinessRule("main_branch_delete", "a matriz não pode ser excluída")
)

// Status representa o estado da filial
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// BranchType representa o tipo de filial
type BranchType string

const (
	TypeHeadquarters BranchType = "headquarters" // Matriz
	TypeBranch       BranchType = "branch"       // Filial comum
	TypeVirtual      BranchType = "virtual"      // Loja virtual/e-commerce
	TypeWarehouse    BranchType = "warehouse"    // Apenas depósito
)

// Valid verifica se o tipo é conhecido
func (t BranchType) Valid() bool {
	switch t {
	case TypeHeadquarters, TypeBranch, TypeVirtual, TypeWarehouse:
		return true
	}
	return false
}

// Branch representa uma filial no sistema
type Branch struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	TenantID  string     `json:"tenant_id" gorm:"size:36;index"` // ID da empresa à qual a filial pertence
	Name      string     `json:"name"`
	Code      string     `json:"code"` // Código interno da filial
	Type      BranchType `json:"type"`
	Document  string     `json:"document"` // CNPJ da filial
	Address   Address    `json:"address" gorm:"serializer:json"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Status    Status     `json:"status"`
	IsMain    bool       `json:"is_main"` // Indica se é a matriz
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Address representa o endereço da filial
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
}

// NewBranch cria uma nova filial
func NewBranch(
	tenantID, name, code string,
	branchType BranchType,
	document string,
	address Address,
	phone, email string,
	isMain bool,
) (*Branch, error) {
	if tenantID == "" {
		return nil, ErrEmptyTenantID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if branchType == "" {
		branchType = TypeBranch
		if isMain {
			branchType = TypeHeadquarters
		}
	}
	if !branchType.Valid() {
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Branch{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Code:      code,
		Type:      branchType,
		Document:  document,
		Address:   address,
		Phone:     phone,
		Email:     email,
		Status:    StatusActive,
		IsMain:    isMain,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se a filial está ativa
func (b *Branch) IsActive() bool {
	return b.Status == StatusActive
}

// Activate ativa a filial
func (b *Branch) Activate() {
	b.Status = StatusActive
	b.UpdatedAt = time.Now()
}

// Deactivate desativa a filial
func (b *Branch) Deactivate() {
	b.Status = StatusInactive
	b.UpdatedAt = time.Now()
}

// Block bloqueia a filial
func (b *Branch) Block() {
	b.Status = StatusBlocked
	b.UpdatedAt = time.Now()
}

// Update atualiza os dados da filial
func (b *Branch) Update(name, code, phone, email string, address Address) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	b.Name = name
	b.Code = code
	b.Phone = phone
	b.Email = email
	b.Address = address
	b.UpdatedAt = time.Now()
	return nil
}
