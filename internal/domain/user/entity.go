package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName      = shared.Validation("name", "nome não pode ser vazio")
	ErrInvalidEmail   = shared.Validation("email", "email inválido")
	ErrWeakPassword   = shared.Validation("password", "senha deve ter pelo menos 6 caracteres")
	ErrInvalidRole    = shared.Validation("role", "papel inválido")
	ErrUserNotFound   = shared.NotFound("usuário não encontrado")
	ErrDuplicateEmail = shared.Conflict("já existe um usuário com este email")
)

// Role representa o papel/função do usuário
type Role string

// Status representa o status do usuário
type Status string

// Constantes para Role
const (
	RoleAdmin   Role = "admin"   // Administrador da empresa
	RoleManager Role = "manager" // Gerente de filial
	RoleStaff   Role = "staff"   // Funcionário regular
)

// Constantes para Status
const (
	StatusActive   Status = "active"   // Usuário ativo
	StatusInactive Status = "inactive" // Usuário inativo
	StatusBlocked  Status = "blocked"  // Usuário bloqueado
)

// Valid verifica se o papel é conhecido
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// User representa um usuário do sistema
type User struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	TenantID    string     `json:"tenant_id" gorm:"size:36;uniqueIndex:idx_users_tenant_email"`
	BranchID    string     `json:"branch_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email" gorm:"uniqueIndex:idx_users_tenant_email"`
	Password    string     `json:"-"` // O campo senha não é retornado nas respostas JSON
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser cria um usuário ativo com a senha já convertida em hash
func NewUser(tenantID, branchID, name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		BranchID:  branchID,
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	u.UpdatedAt = time.Now()
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsActive verifica se o usuário está ativo
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin verifica se o usuário é um administrador
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasAccessToBranch verifica se o usuário tem acesso à filial especificada
// Administradores têm acesso a todas as filiais do seu tenant
func (u *User) HasAccessToBranch(branchID string) bool {
	if u.IsAdmin() || u.BranchID == "" {
		return true
	}
	return u.BranchID == branchID
}

// Update altera nome, papel, filial e status
func (u *User) Update(name string, role Role, branchID string, status Status) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Name = name
	u.Role = role
	u.BranchID = branchID
	if status != "" {
		u.Status = status
	}
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin registra o último acesso
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}
