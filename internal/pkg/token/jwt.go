// Package token emite e verifica os JWTs de acesso dos operadores de inventário.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gostocktake/internal/domain"
)

const (
	// Issuer identifica os tokens emitidos por este serviço.
	Issuer = "GoStocktake-API"
	// Audience restringe o uso do token à API de inventário.
	Audience = "gostocktake"

	defaultLeeway = 30 * time.Second
)

// ErrInvalidToken envolve toda falha de verificação (assinatura, expiração, claims).
var ErrInvalidToken = errors.New("token inválido")

// Claims carrega a identidade do operador: o e-mail vira o countedBy das contagens
// e o papel decide o acesso às rotas de supervisão. O ID do usuário vai em Subject.
type Claims struct {
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// UserID devolve o ID do usuário dono do token.
func (c *Claims) UserID() string { return c.Subject }

// Option ajusta o Service (relógio e tolerância), usado principalmente em testes.
type Option func(*Service)

// WithClock troca o relógio usado na emissão e na verificação.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLeeway define a tolerância de relógio entre emissor e verificador.
func WithLeeway(d time.Duration) Option {
	return func(s *Service) { s.leeway = d }
}

// Service assina e verifica tokens HS256.
type Service struct {
	secretKey []byte
	ttl       time.Duration
	leeway    time.Duration
	now       func() time.Time
}

// NewService cria o serviço de tokens com a chave e a validade informadas.
func NewService(secretKey string, ttl time.Duration, opts ...Option) *Service {
	s := &Service{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		leeway:    defaultLeeway,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue emite um token para o usuário autenticado.
func (s *Service) Issue(user domain.User) (domain.AuthToken, error) {
	if user.ID == "" || !user.Role.Valid() {
		return domain.AuthToken{}, fmt.Errorf("usuário sem ID ou com papel '%s' desconhecido", user.Role)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("falha ao assinar o token: %w", err)
	}
	return domain.AuthToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify valida assinatura, emissor, audiência e validade, e devolve as claims.
// Tokens sem sujeito ou com papel desconhecido são recusados.
func (s *Service) Verify(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: claims incompletas", ErrInvalidToken)
	}
	return claims, nil
}
