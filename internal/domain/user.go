package domain

import "time"

// User representa a entidade do usuário no sistema.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleSupervisor UserRole = "supervisor" // aprova variâncias e fecha sessões
	RoleCounter    UserRole = "counter"    // operador de contagem
)

// Valid informa se o papel é conhecido.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleCounter
}

// UserRegistration representa o payload de entrada para o registro público.
// Role é opcional e só aceita counter; papéis elevados são atribuídos por um admin.
type UserRegistration struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role,omitempty"`
}

// RoleAssignment é o payload da troca de papel feita por um administrador.
type RoleAssignment struct {
	Role UserRole `json:"role" example:"supervisor"`
}

// AuthToken é o JWT emitido no login e o instante em que expira.
type AuthToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
