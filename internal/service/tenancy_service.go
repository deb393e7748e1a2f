package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/branch"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/company"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("email ou senha incorretos")
	ErrUserInactive       = errors.New("usuário inativo ou bloqueado")
	ErrAdminExists        = shared.BusinessRule("admin_already_exists", "a empresa já possui usuários cadastrados")
)

// CompanyInput são os dados de cadastro de uma empresa
type CompanyInput struct {
	Name        string
	Document    string
	Email       string
	Phone       string
	Category    company.Category
	PlanType    string
	MaxBranches int
}

// BranchInput são os dados de cadastro de uma filial
type BranchInput struct {
	Name     string
	Code     string
	Type     branch.BranchType
	Document string
	Address  branch.Address
	Phone    string
	Email    string
}

// TenancyService cuida de empresas, filiais e usuários
type TenancyService struct {
	store storage.Storage
	log   logger.Logger
	now   Clock
}

// NewTenancyService cria o serviço; clock nulo usa time.Now
func NewTenancyService(store storage.Storage, log logger.Logger, clock Clock) *TenancyService {
	return &TenancyService{store: store, log: log, now: clockOrNow(clock)}
}

// RegisterCompany cria a empresa junto com a matriz
func (s *TenancyService) RegisterCompany(ctx context.Context, in CompanyInput) (*company.Company, *branch.Branch, error) {
	c, err := company.NewCompany(in.Name, in.Document, in.Email, in.Phone, in.Category, in.PlanType, in.MaxBranches)
	if err != nil {
		return nil, nil, err
	}
	main, err := branch.NewBranch(c.ID, c.Name, "MATRIZ", branch.TypeHeadquarters, c.Document, branch.Address{}, c.Phone, c.Email, true)
	if err != nil {
		return nil, nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		if err := repos.Companies.Create(ctx, c); err != nil {
			return err
		}
		return repos.Branches.Create(ctx, main)
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.Info("Empresa cadastrada", "tenant_id", c.ID, "category", c.BusinessCategory)
	return c, main, nil
}

// ValidateTenant indica se a empresa existe e está ativa
func (s *TenancyService) ValidateTenant(ctx context.Context, tenantID string) (bool, error) {
	c, err := s.store.Repositories().Companies.FindByID(ctx, tenantID)
	if errors.Is(err, company.ErrCompanyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return c.IsActive(), nil
}

// CreateFirstAdmin cria o primeiro administrador; depois disso a rota deixa de valer
func (s *TenancyService) CreateFirstAdmin(ctx context.Context, tenantID, name, email, password string) (*user.User, error) {
	u, err := user.NewUser(tenantID, "", name, email, password, user.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		c, err := repos.Companies.FindByID(ctx, tenantID)
		if err != nil {
			return err
		}
		if !c.IsActive() {
			return company.ErrCompanyNotActive
		}
		n, err := repos.Users.CountByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrAdminExists
		}
		return repos.Users.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Administrador criado", "tenant_id", tenantID, "user_id", u.ID)
	return u, nil
}

// Authenticate confere as credenciais e registra o acesso
func (s *TenancyService) Authenticate(ctx context.Context, tenantID, email, password string) (*user.User, error) {
	repos := s.store.Repositories()

	c, err := repos.Companies.FindByID(ctx, tenantID)
	if errors.Is(err, company.ErrCompanyNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, company.ErrCompanyNotActive
	}

	u, err := repos.Users.FindByEmail(ctx, tenantID, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	u.RecordLogin(s.now())
	if err := repos.Users.Update(ctx, u); err != nil {
		s.log.Warn("Falha ao registrar último acesso", "user_id", u.ID, "error", err)
	}
	return u, nil
}

// CreateUser cadastra um usuário no tenant
func (s *TenancyService) CreateUser(ctx context.Context, tenantID, branchID, name, email, password string, role user.Role) (*user.User, error) {
	repos := s.store.Repositories()
	if branchID != "" {
		if _, err := repos.Branches.FindByID(ctx, tenantID, branchID); err != nil {
			return nil, err
		}
	}
	u, err := user.NewUser(tenantID, branchID, name, email, password, role)
	if err != nil {
		return nil, err
	}
	if err := repos.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateBranch cadastra uma filial respeitando o limite do plano
func (s *TenancyService) CreateBranch(ctx context.Context, tenantID string, in BranchInput) (*branch.Branch, error) {
	b, err := branch.NewBranch(tenantID, in.Name, in.Code, in.Type, in.Document, in.Address, in.Phone, in.Email, false)
	if err != nil {
		return nil, err
	}
	if b.Type == branch.TypeHeadquarters {
		return nil, branch.ErrInvalidType
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos storage.Repositories) error {
		c, err := repos.Companies.FindByID(ctx, tenantID)
		if err != nil {
			return err
		}
		n, err := repos.Branches.CountByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if n >= c.MaxBranches {
			return branch.ErrBranchLimit
		}
		return repos.Branches.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBranch exclui uma filial; a matriz não pode ser excluída
func (s *TenancyService) DeleteBranch(ctx context.Context, tenantID, id string) error {
	repos := s.store.Repositories()
	b, err := repos.Branches.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if b.IsMain {
		return branch.ErrMainBranch
	}
	return repos.Branches.Delete(ctx, tenantID, id)
}
