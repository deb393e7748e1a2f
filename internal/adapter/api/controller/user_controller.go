package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/erp-multinegocio/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/shared"
	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
	"github.com/hugohenrick/erp-multinegocio/internal/service"
	"github.com/hugohenrick/erp-multinegocio/internal/storage"
	"github.com/hugohenrick/erp-multinegocio/pkg/auth"
	"github.com/hugohenrick/erp-multinegocio/pkg/logger"
)

var errInvalidUserStatus = shared.Validation("status", "status de usuário inválido")

// UserController gerencia as requisições relacionadas a usuários
type UserController struct {
	tenancy *service.TenancyService
	store   storage.Storage
	log     logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(tenancy *service.TenancyService, store storage.Storage, log logger.Logger) *UserController {
	return &UserController{tenancy: tenancy, store: store, log: log}
}

// Create cria um novo usuário
// @Summary Cria um novo usuário
// @Description Cria um novo usuário na empresa; a filial informada precisa existir
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param user body dto.UserRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.UserRequest
	if !bindJSON(ctx, &request) {
		return
	}

	u, err := c.tenancy.CreateUser(ctx.Request.Context(), tenantID, request.BranchID,
		request.Name, request.Email, request.Password, user.Role(request.Role))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// Get busca um usuário pelo ID
// @Summary Busca um usuário
// @Tags users
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [get]
func (c *UserController) Get(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	u, err := c.store.Repositories().Users.FindByID(ctx.Request.Context(), tenantID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// List lista os usuários da empresa
// @Summary Lista os usuários
// @Tags users
// @Produce json
// @Security Bearer
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	p := paginationOf(ctx)

	users, err := c.store.Repositories().Users.List(ctx.Request.Context(), tenantID)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(dto.ToUserResponses(slice(users, p)), len(users), p))
}

// Update atualiza um usuário
// @Summary Atualiza um usuário
// @Description Altera nome, papel, filial e status; senha é trocada quando informada
// @Tags users
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Param user body dto.UserUpdateRequest true "Dados do usuário"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	var request dto.UserUpdateRequest
	if !bindJSON(ctx, &request) {
		return
	}

	u, err := c.update(ctx.Request.Context(), tenantID, ctx.Param("id"), request)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

func (c *UserController) update(ctx context.Context, tenantID, id string, request dto.UserUpdateRequest) (*user.User, error) {
	status := user.Status(request.Status)
	switch status {
	case "", user.StatusActive, user.StatusInactive, user.StatusBlocked:
	default:
		return nil, errInvalidUserStatus
	}

	repos := c.store.Repositories()
	u, err := repos.Users.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if request.BranchID != "" && request.BranchID != u.BranchID {
		if _, err := repos.Branches.FindByID(ctx, tenantID, request.BranchID); err != nil {
			return nil, err
		}
	}
	if err := u.Update(request.Name, user.Role(request.Role), request.BranchID, status); err != nil {
		return nil, err
	}
	if request.Password != "" {
		if err := u.SetPassword(request.Password); err != nil {
			return nil, err
		}
	}
	if err := repos.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete exclui um usuário
// @Summary Exclui um usuário
// @Description O usuário autenticado não pode excluir a si mesmo
// @Tags users
// @Security Bearer
// @Param id path string true "ID do usuário"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /users/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	tenantID, ok := tenantOf(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")
	if auth.GetCurrentUser(ctx).ID == id {
		respondError(ctx, c.log, shared.BusinessRule("self_delete", "não é possível excluir o próprio usuário"))
		return
	}
	if err := c.store.Repositories().Users.Delete(ctx.Request.Context(), tenantID, id); err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
