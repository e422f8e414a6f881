package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoControle.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
	Message() string  // Mensagem segura para o cliente
}

// --- Erros de Entrada ---

// InvalidInputError representa campos ausentes ou malformados.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string    { return fmt.Sprintf("Entrada inválida: %s", e.Msg) }
func (e *InvalidInputError) Category() string { return "INVALID_INPUT" }
func (e *InvalidInputError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InvalidInputError) Unwrap() error    { return nil }
func (e *InvalidInputError) Message() string  { return e.Msg }

// NewInvalidInputError cria um erro de entrada inválida.
func NewInvalidInputError(msg string) AppError {
	return &InvalidInputError{Msg: msg}
}

// ValidationError representa um valor fora do intervalo permitido.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }
func (e *ValidationError) Message() string  { return e.Msg }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// --- Erros de Domínio ---

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }
func (e *NotFoundError) Message() string  { return e.Msg }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (e.g., email duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }
func (e *ConflictError) Message() string  { return e.Msg }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Erros de Autenticação / Autorização ---

// AuthFailureError é o erro genérico de credenciais inválidas. Nunca indica
// se o email existe ou se a senha está errada.
type AuthFailureError struct {
	Msg string
}

func (e *AuthFailureError) Error() string    { return fmt.Sprintf("Falha de autenticação: %s", e.Msg) }
func (e *AuthFailureError) Category() string { return "AUTH_FAILURE" }
func (e *AuthFailureError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *AuthFailureError) Unwrap() error    { return nil }
func (e *AuthFailureError) Message() string  { return e.Msg }

// NewAuthFailureError cria o erro de credenciais inválidas.
func NewAuthFailureError(msg string) AppError {
	return &AuthFailureError{Msg: msg}
}

// UnauthorizedError representa uma requisição sem sessão válida.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autenticado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHENTICATED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }
func (e *UnauthorizedError) Message() string  { return e.Msg }

// NewUnauthorizedError cria um erro de sessão ausente ou inválida.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem o papel necessário.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }
func (e *ForbiddenError) Message() string  { return e.Msg }

// NewForbiddenError cria um erro de permissão insuficiente.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// Message nunca expõe o detalhe do motor de persistência ao cliente.
func (e *InternalError) Message() string { return "Ocorreu um erro inesperado." }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e
// mensagem segura. Erros encapsulados com %w mantêm sua classe.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Message()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// Is helpers usados pelos serviços para traduzir erros de repositório.

// IsNotFound reporta se algum erro na cadeia é um NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

// IsConflict reporta se algum erro na cadeia é um ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return stderrors.As(err, &target)
}
