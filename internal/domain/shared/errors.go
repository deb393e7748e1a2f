// Package shared reúne os tipos de erro comuns a todos os agregados.
package shared

import (
	"errors"
	"fmt"
)

// Tipos de erro usados para classificar falhas na borda HTTP
var (
	ErrValidation         = errors.New("dados inválidos")
	ErrNotFound           = errors.New("registro não encontrado")
	ErrConflict           = errors.New("registro já existe")
	ErrBusinessRule       = errors.New("regra de negócio violada")
	ErrStorageUnavailable = errors.New("armazenamento indisponível")
)

// ValidationError descreve um campo obrigatório ausente ou malformado
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrValidation)
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validation cria um ValidationError para o campo informado
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// kindError associa uma mensagem específica a um dos tipos acima
type kindError struct {
	kind error
	msg  string
	code string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// Code devolve o identificador estável da regra, usado pela API
func (e *kindError) Code() string { return e.code }

// NotFound cria um erro "não encontrado" com mensagem específica
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg, code: "not_found"}
}

// Conflict cria um erro de duplicidade com mensagem específica
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg, code: "conflict"}
}

// BusinessRule cria uma rejeição de regra de negócio identificada por code
func BusinessRule(code, msg string) error {
	return &kindError{kind: ErrBusinessRule, msg: msg, code: code}
}

// Unavailable embrulha uma falha de conectividade com o armazenamento
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// CodeOf devolve o código da regra violada, quando existir
func CodeOf(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}
