package user

import (
	"context"
	"net/http"
	"time"

	"gostocktake/internal/api/response"
	"gostocktake/internal/domain"
	"gostocktake/internal/pkg/logger"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (domain.AuthToken, error)
	AssignRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carrega o JWT emitido e sua expiração.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário counter, hasheia a senha e salva no banco de dados. Papéis elevados são atribuídos por um admin.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido (JSON malformado ou campos obrigatórios ausentes)"
// @Failure 403 {object} domain.ErrorResponse "Papel elevado solicitado"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := response.Decode(r, &reg, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	// PasswordHash não é serializado (tag json:"-").
	response.JSON(w, h.Logger, http.StatusCreated, newUser)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token.
// @Tags users
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} LoginResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq LoginRequest
	if err := response.Decode(r, &loginReq, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	issued, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, h.Logger, http.StatusOK, LoginResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt})
}

// AssignRoleHandler lida com a requisição PUT /v1/users/{id}/role.
// @Summary Atribui o papel de um usuário
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuário"
// @Param role body domain.RoleAssignment true "Novo papel"
// @Success 200 {object} domain.User
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/{id}/role [put]
func (h *Handler) AssignRoleHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.RoleAssignment
	if err := response.Decode(r, &req, false); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.AssignRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, h.Logger, http.StatusOK, updated)
}
