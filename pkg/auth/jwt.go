package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hugohenrick/erp-multinegocio/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

// JWTClaims representa as claims personalizadas do token JWT
type JWTClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// JWTService implementa serviços relacionados a tokens JWT
type JWTService struct {
	secretKey  []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService cria uma nova instância de JWTService
func NewJWTService(secretKey string, expiration time.Duration, issuer string) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}

	// Duração padrão de 24 horas se não for configurado
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &JWTService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// Expiration devolve a validade dos tokens emitidos
func (s *JWTService) Expiration() time.Duration {
	return s.expiration
}

// GenerateToken gera um token JWT para o usuário e devolve também sua expiração
func (s *JWTService) GenerateToken(u *user.User) (string, time.Time, error) {
	claims := &JWTClaims{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     string(u.Role),
		BranchID: u.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  s.issuer,
			Subject: u.ID,
		},
	}
	return s.sign(claims)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil {
		// Verificar se o erro é de token expirado
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// RefreshToken renova um token JWT, inclusive um que acabou de expirar
func (s *JWTService) RefreshToken(tokenString string) (string, time.Time, error) {
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil && !errors.Is(err, jwt.ErrTokenExpired) {
		// Se o erro não for apenas de expiração, rejeitar a renovação
		return "", time.Time{}, ErrInvalidToken
	}
	if claims.UserID == "" || claims.TenantID == "" {
		return "", time.Time{}, ErrInvalidClaims
	}

	return s.sign(claims)
}

func (s *JWTService) sign(claims *JWTClaims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.expiration)
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.NotBefore = jwt.NewNumericDate(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *JWTService) keyFunc(token *jwt.Token) (interface{}, error) {
	// Verificar o método de assinatura
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return s.secretKey, nil
}
