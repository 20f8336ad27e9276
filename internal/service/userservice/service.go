package userservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
)

// minPasswordLength é o tamanho mínimo aceito para senhas.
const minPasswordLength = 8

// UserRepository define o contrato de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token)
type TokenService interface {
	Issue(user domain.User) (domain.AuthToken, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, logger logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register registra um novo usuário no sistema. O registro é público, então todo
// usuário nasce counter; supervisor e admin só via AssignRole.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(registration.Email))
	s.logger.Debug("Iniciando registro de usuário.", map[string]interface{}{"email": email})

	// 1. Validação
	if email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Email '%s' inválido.", email))
	}
	if len(registration.Password) < minPasswordLength {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", minPasswordLength))
	}
	switch role := registration.Role; {
	case role == "" || role == domain.RoleCounter:
	case role.Valid():
		s.logger.Warn("Registro público pediu papel elevado.", map[string]interface{}{"email": email, "role": role})
		return domain.User{}, apperror.NewForbiddenError(fmt.Sprintf("O papel '%s' só pode ser atribuído por um administrador.", role))
	default:
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Papel '%s' inválido.", role))
	}

	// 2. Hashing da Senha
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Falha ao gerar hash da senha.", err)
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 3. Persistência
	user, err := s.UserRepo.Save(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleCounter,
	})
	if err != nil {
		var conflictErr *apperror.ConflictError
		if errors.As(err, &conflictErr) {
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", email))
		}
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado com sucesso.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// AssignRole troca o papel de um usuário. A rota é restrita a administradores.
func (s *UserService) AssignRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário %s não encontrado.", userID))
	}
	if !role.Valid() {
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("Papel '%s' inválido.", role))
	}

	user, err := s.UserRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return domain.User{}, err
	}

	actor, _ := domain.ActorFrom(ctx)
	s.logger.Info("Papel de usuário alterado.", map[string]interface{}{"user_id": user.ID, "role": user.Role, "by": actor})
	return user, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, email string, password string) (domain.AuthToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.AuthToken{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira Unauthorized para não indicar quais e-mails existem.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.AuthToken{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.AuthToken{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Info("Tentativa de login com senha incorreta.", map[string]interface{}{"user_id": user.ID})
		return domain.AuthToken{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	issued, err := s.TokenSvc.Issue(user)
	if err != nil {
		s.logger.Error("Falha ao gerar token de autenticação.", err)
		return domain.AuthToken{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.ID})
	return issued, nil
}
