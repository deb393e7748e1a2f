package dto

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse representa a estrutura de resposta para erros
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details string      `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse representa a estrutura de resposta para operações sem corpo próprio
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse é a resposta paginada padrão das listagens
type ListResponse[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// MaxPage limita page para que Offset não estoure int
const MaxPage = 1_000_000

// Pagination representa a estrutura de paginação
type Pagination struct {
	Page     int
	PageSize int
}

// Offset devolve o deslocamento correspondente à página
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// GetPagination retorna uma estrutura de paginação com valores padrão
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	} else if page > MaxPage {
		page = MaxPage
	}

	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}

	return Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(message, details string) ErrorResponse {
	return ErrorResponse{
		Error:   message,
		Details: details,
	}
}

// NewSuccessResponse cria uma nova resposta de sucesso
func NewSuccessResponse(message string, data interface{}) SuccessResponse {
	return SuccessResponse{
		Message: message,
		Data:    data,
	}
}

// NewListResponse monta a resposta paginada; items nulo vira lista vazia
func NewListResponse[T any](items []T, totalCount int, p Pagination) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:      items,
		TotalCount: totalCount,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(totalCount, p.PageSize),
	}
}

// calculateTotalPages calcula o número total de páginas com base no total de registros e no tamanho da página
func calculateTotalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}

	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	return totalPages
}

// ParseDate aceita "2006-01-02" (meia-noite no fuso loc) ou RFC3339
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: use AAAA-MM-DD ou RFC3339", value)
	}
	return t, nil
}

// ParseOptionalDate é como ParseDate, mas texto vazio devolve nil
func ParseOptionalDate(value string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
