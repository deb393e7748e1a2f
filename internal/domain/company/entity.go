package company

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
)

var (
	ErrEmptyName        = shared.Validation("name", "nome não pode ser vazio")
	ErrEmptyDocument    = shared.Validation("document", "documento não pode ser vazio")
	ErrInvalidCategory  = shared.Validation("business_category", "categoria de negócio inválida")
	ErrInvalidStatus    = shared.Validation("status", "status inválido")
	ErrCompanyNotFound  = shared.NotFound("empresa não encontrada")
	ErrDuplicateCompany = shared.Conflict("empresa com mesmo documento já existe")
	ErrCompanyNotActive = shared.BusinessRule("company_not_active", "empresa não está ativa")
)

// Status representa o estado da empresa
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// Category é o ramo de atuação; define textos e campos exibidos na interface
type Category string

const (
	CategoryPharmacy     Category = "pharmacy"
	CategoryPetClinic    Category = "pet_clinic"
	CategoryRestaurant   Category = "restaurant"
	CategoryRetail       Category = "retail"
	CategoryDesignAgency Category = "design_agency"
	CategoryBeautySalon  Category = "beauty_salon"
	CategoryOther        Category = "other"
)

// Valid verifica se a categoria é conhecida
func (c Category) Valid() bool {
	switch c {
	case CategoryPharmacy, CategoryPetClinic, CategoryRestaurant, CategoryRetail,
		CategoryDesignAgency, CategoryBeautySalon, CategoryOther:
		return true
	}
	return false
}

// Company representa um tenant: a empresa dona dos dados
type Company struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	Name             string    `json:"name"`
	Document         string    `json:"document" gorm:"uniqueIndex"` // CNPJ/CPF
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	BusinessCategory Category  `json:"business_category"`
	Status           Status    `json:"status"`
	PlanType         string    `json:"plan_type"`
	MaxBranches      int       `json:"max_branches"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName define a tabela usada pelo backend gorm
func (Company) TableName() string { return "companies" }

// NewCompany cria uma nova empresa ativa
func NewCompany(name, document, email, phone string, category Category, planType string, maxBranches int) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, ErrEmptyDocument
	}
	if category == "" {
		category = CategoryOther
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if maxBranches < 1 {
		maxBranches = 1
	}

	now := time.Now()
	return &Company{
		ID:               uuid.New().String(),
		Name:             name,
		Document:         document,
		Email:            email,
		Phone:            phone,
		BusinessCategory: category,
		Status:           StatusActive,
		PlanType:         planType,
		MaxBranches:      maxBranches,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsActive verifica se a empresa está ativa
func (c *Company) IsActive() bool {
	return c.Status == StatusActive
}

// SetStatus altera o status da empresa
func (c *Company) SetStatus(status Status) error {
	switch status {
	case StatusActive, StatusInactive, StatusBlocked:
	default:
		return ErrInvalidStatus
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

// ChangePlan altera o plano da empresa
func (c *Company) ChangePlan(planType string, maxBranches int) {
	c.PlanType = planType
	c.MaxBranches = maxBranches
	c.UpdatedAt = time.Now()
}

// Update atualiza os dados cadastrais
func (c *Company) Update(name, email, phone string, category Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if category != "" {
		if !category.Valid() {
			return ErrInvalidCategory
		}
		c.BusinessCategory = category
	}
	c.Name = name
	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}
