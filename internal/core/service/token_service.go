package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

const tokenIssuer = "nutrition-api"

// TokenService issues and verifies HS256-signed identity tokens. It is
// stateless: verification depends only on the secret and the token itself.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iss":     tokenIssuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify returns the token's identity, or ErrInvalidToken when the
// signature does not check out, the token has expired, or the payload
// is malformed.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{UserID: userID, Email: email}, nil
}
