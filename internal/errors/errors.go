package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoStocktake.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado (sessão ou item desconhecido).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., OCC, recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito (usado em OCC).
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Erros da Reconciliação de Inventário ---

// InvalidStateTransitionError indica uma transição não permitida pela máquina de estados
// da sessão ou do item.
type InvalidStateTransitionError struct {
	From string
	To   string
	Msg  string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("Transição inválida (%s -> %s): %s", e.From, e.To, e.Msg)
}
func (e *InvalidStateTransitionError) Category() string { return "INVALID_STATE_TRANSITION" }
func (e *InvalidStateTransitionError) HTTPStatus() int  { return http.StatusConflict }
func (e *InvalidStateTransitionError) Unwrap() error    { return nil }

// NewInvalidStateTransitionError cria um erro de transição inválida.
func NewInvalidStateTransitionError(from, to, msg string) AppError {
	return &InvalidStateTransitionError{From: from, To: to, Msg: msg}
}

// InvalidQuantityError indica uma quantidade contada ou de sistema negativa.
type InvalidQuantityError struct {
	Qty int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("Quantidade inválida: %d (deve ser maior ou igual a zero)", e.Qty)
}
func (e *InvalidQuantityError) Category() string { return "INVALID_QUANTITY" }
func (e *InvalidQuantityError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *InvalidQuantityError) Unwrap() error    { return nil }

// NewInvalidQuantityError cria um erro de quantidade inválida.
func NewInvalidQuantityError(qty int) AppError {
	return &InvalidQuantityError{Qty: qty}
}

// NothingToReconcileError indica aprovação ou recontagem de um item sem variância.
type NothingToReconcileError struct {
	ItemID string
}

func (e *NothingToReconcileError) Error() string {
	return fmt.Sprintf("Nada a reconciliar: o item %s não possui variância", e.ItemID)
}
func (e *NothingToReconcileError) Category() string { return "NOTHING_TO_RECONCILE" }
func (e *NothingToReconcileError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *NothingToReconcileError) Unwrap() error    { return nil }

// NewNothingToReconcileError cria um erro de item sem variância.
func NewNothingToReconcileError(itemID string) AppError {
	return &NothingToReconcileError{ItemID: itemID}
}

// ScopeRequiredError indica uma sessão iniciada sem nome ou sem zona/categoria.
type ScopeRequiredError struct {
	Msg string
}

func (e *ScopeRequiredError) Error() string    { return fmt.Sprintf("Escopo obrigatório: %s", e.Msg) }
func (e *ScopeRequiredError) Category() string { return "SCOPE_REQUIRED" }
func (e *ScopeRequiredError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ScopeRequiredError) Unwrap() error    { return nil }

// NewScopeRequiredError cria um erro de escopo ausente.
func NewScopeRequiredError(msg string) AppError {
	return &ScopeRequiredError{Msg: msg}
}

// --- Erros de Autenticação/Autorização ---

// UnauthorizedError representa credenciais ausentes ou inválidas.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem o papel necessário.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro de permissão.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria e a mensagem.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			// Não vazamos detalhes do driver para o cliente.
			return appErr.HTTPStatus(), appErr.Category(), "Ocorreu um erro interno."
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
