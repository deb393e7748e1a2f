package tenant

import "errors"

// Erros comuns relacionados a operações de tenant
var (
	// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
	ErrTenantNotSpecified = errors.New("tenant ID não especificado")

	// ErrTenantNotActive ocorre quando o tenant não existe ou não está com status ativo
	ErrTenantNotActive = errors.New("o tenant informado não existe ou está inativo")
)
