package userservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/pkg/logger"
	"gostocktake/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID string, role domain.UserRole) (domain.User, error) {
	args := m.Called(ctx, userID, role)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock do TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(user domain.User) (domain.AuthToken, error) {
	args := m.Called(user)
	return args.Get(0).(domain.AuthToken), args.Error(1)
}

func newService() (*userservice.UserService, *MockUserRepository, *MockTokenService) {
	repo := new(MockUserRepository)
	tokens := new(MockTokenService)
	return userservice.NewService(repo, tokens, logger.NewNop()), repo, tokens
}

// --- Testes para Register ---

func TestRegister_Success_DefaultRole(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "counter@gostocktake.io" && u.Role == domain.RoleCounter &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha-forte")) == nil
	})).Return(domain.User{ID: id, Email: "counter@gostocktake.io", Role: domain.RoleCounter}, nil)

	user, err := svc.Register(context.Background(), domain.UserRegistration{
		Email:    " Counter@GoStocktake.io ",
		Password: "senha-forte",
	})

	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, domain.RoleCounter, user.Role)
	repo.AssertExpectations(t)
}

func TestRegister_Fail_Validation(t *testing.T) {
	tests := []struct {
		name string
		reg  domain.UserRegistration
	}{
		{"sem email", domain.UserRegistration{Password: "senha-forte"}},
		{"email inválido", domain.UserRegistration{Email: "nao-e-email", Password: "senha-forte"}},
		{"senha curta", domain.UserRegistration{Email: "a@b.io", Password: "123"}},
		{"papel inválido", domain.UserRegistration{Email: "a@b.io", Password: "senha-forte", Role: "root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()

			_, err := svc.Register(context.Background(), tt.reg)

			assert.IsType(t, &apperror.ValidationError{}, err)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestRegister_Fail_DuplicateEmail(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, apperror.NewConflictError("duplicado"))

	_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "a@b.io", Password: "senha-forte"})

	assert.IsType(t, &apperror.ConflictError{}, err)
	assert.Contains(t, err.Error(), "a@b.io")
}

func TestRegister_ExplicitCounterRole(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool { return u.Role == domain.RoleCounter })).
		Return(domain.User{ID: uuid.NewString(), Email: "c@b.io", Role: domain.RoleCounter}, nil)

	user, err := svc.Register(context.Background(), domain.UserRegistration{Email: "c@b.io", Password: "senha-forte", Role: domain.RoleCounter})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleCounter, user.Role)
	repo.AssertExpectations(t)
}

func TestRegister_Fail_ElevatedRoleIsForbidden(t *testing.T) {
	for _, role := range []domain.UserRole{domain.RoleAdmin, domain.RoleSupervisor} {
		t.Run(string(role), func(t *testing.T) {
			svc, repo, _ := newService()

			_, err := svc.Register(context.Background(), domain.UserRegistration{Email: "x@y.io", Password: "12345678", Role: role})

			assert.IsType(t, &apperror.ForbiddenError{}, err)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

// --- Testes para AssignRole ---

func TestAssignRole_Success(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()
	repo.On("UpdateRole", mock.Anything, id, domain.RoleSupervisor).
		Return(domain.User{ID: id, Email: "c@b.io", Role: domain.RoleSupervisor}, nil)

	user, err := svc.AssignRole(context.Background(), id, domain.RoleSupervisor)

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleSupervisor, user.Role)
	repo.AssertExpectations(t)
}

func TestAssignRole_Fail(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		role    domain.UserRole
		wantErr interface{}
	}{
		{"id malformado", "abc", domain.RoleAdmin, &apperror.NotFoundError{}},
		{"papel inválido", uuid.NewString(), "root", &apperror.ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()

			_, err := svc.AssignRole(context.Background(), tt.userID, tt.role)

			assert.IsType(t, tt.wantErr, err)
			repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAssignRole_Fail_UnknownUser(t *testing.T) {
	svc, repo, _ := newService()
	id := uuid.NewString()
	repo.On("UpdateRole", mock.Anything, id, domain.RoleAdmin).Return(domain.User{}, apperror.NewNotFoundError("não encontrado"))

	_, err := svc.AssignRole(context.Background(), id, domain.RoleAdmin)

	assert.IsType(t, &apperror.NotFoundError{}, err)
}

// --- Testes para Login ---

func TestLogin_Success(t *testing.T) {
	svc, repo, tokens := newService()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "sup@gostocktake.io").
		Return(domain.User{ID: "u1", Email: "sup@gostocktake.io", PasswordHash: string(hash), Role: domain.RoleSupervisor}, nil)
	expiresAt := time.Date(2024, 10, 14, 18, 0, 0, 0, time.UTC)
	tokens.On("Issue", mock.MatchedBy(func(u domain.User) bool { return u.ID == "u1" && u.Role == domain.RoleSupervisor })).
		Return(domain.AuthToken{Token: "jwt-token", ExpiresAt: expiresAt}, nil)

	issued, err := svc.Login(context.Background(), "sup@gostocktake.io", "senha-forte")

	assert.NoError(t, err)
	assert.Equal(t, "jwt-token", issued.Token)
	assert.Equal(t, expiresAt, issued.ExpiresAt)
	tokens.AssertExpectations(t)
}

func TestLogin_Fail_WrongPassword(t *testing.T) {
	svc, repo, tokens := newService()
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("FindByEmail", mock.Anything, "sup@gostocktake.io").
		Return(domain.User{ID: "u1", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), "sup@gostocktake.io", "errada")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestLogin_Fail_UnknownEmail(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "x@y.io").Return(domain.User{}, apperror.NewNotFoundError("não encontrado"))

	_, err := svc.Login(context.Background(), "x@y.io", "senha-forte")

	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

func TestLogin_Fail_DBError(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "x@y.io").Return(domain.User{}, apperror.NewDBError("falha", errors.New("conn refused")))

	_, err := svc.Login(context.Background(), "x@y.io", "senha-forte")

	assert.IsType(t, &apperror.InternalError{}, err)
}
