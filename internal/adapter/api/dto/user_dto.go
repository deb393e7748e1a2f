package dto

import (
	"time"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
)

// UserRequest representa os dados de um usuário para criação
type UserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	BranchID string `json:"branch_id"`
	Role     string `json:"role" binding:"required"`
}

// UserUpdateRequest representa os dados editáveis de um usuário
type UserUpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	BranchID string `json:"branch_id"`
	Role     string `json:"role" binding:"required"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

// UserResponse representa a resposta com dados de um usuário
type UserResponse struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	BranchID    string     `json:"branch_id,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToUserResponse converte um usuário do domínio para DTO de resposta
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		TenantID:    u.TenantID,
		BranchID:    u.BranchID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converte uma lista de usuários
func ToUserResponses(users []*user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}
