package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims включает стандартные и наш флаг администратора.
type Claims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"is_admin"`
}

// Generate signs an HS256 token for subject. The service has no user store of
// its own; tokens come from the identity service or `resumectl token`.
func (g *Generator) Generate(_ context.Context, subject uuid.UUID, isAdmin bool) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		IsAdmin: isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrInvalidIssuer = errors.New("invalid token issuer")
	ErrBadSubject    = errors.New("token subject is not a user id")
)

// Verify parses and checks a token. An empty issuer accepts any issuer.
func Verify(tokenStr string, secret []byte, issuer string) (*Claims, uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return nil, uuid.Nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, uuid.Nil, ErrInvalidToken
	}
	if issuer != "" && claims.Issuer != issuer {
		return nil, uuid.Nil, ErrInvalidIssuer
	}
	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, ErrBadSubject
	}
	return claims, sub, nil
}
