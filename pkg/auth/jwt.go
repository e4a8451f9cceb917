package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Subject is the identity encoded into an access token.
type Subject struct {
	UserID string
	Email  string
	Role   string
}

// Claims are the JWT claims issued at login.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateAccessToken(sub Subject) (string, error)
	ValidateToken(token string) (*Claims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTService signs tokens with HS256.
func NewJWTService(secret string, expiry time.Duration) JWTService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &jwtService{
		secret: []byte(secret),
		expiry: expiry,
		issuer: "doctor-api",
		now:    time.Now,
	}
}

func (s *jwtService) GenerateAccessToken(sub Subject) (string, error) {
	now := s.now()
	claims := Claims{
		Email: sub.Email,
		Role:  sub.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *jwtService) ValidateToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
