package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"news-events-api/internal/model"
)

// RoleAdmin is the role marker embedded in every issued token.
const RoleAdmin = "admin"

// DefaultTokenExpiry is used when no expiry is configured.
const DefaultTokenExpiry = 24 * time.Hour

// Claims represents the JWT claims carried by admin tokens.
type Claims struct {
	AdminID int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret and token lifetime.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken issues a signed token identifying the admin.
func (s *JWTService) GenerateToken(admin *model.Admin) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Secret exposes the signing key for the route-level auth middleware.
func (s *JWTService) Secret() []byte {
	return s.secret
}
