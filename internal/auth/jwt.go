package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that does not carry a
// valid signature from this service's secret.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the JWT claims structure. Tokens carry identity and
// privilege only; no expiry is set, so an issued token is valid for as long
// as the signing secret stays the same.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens. The secret is provided at
// construction and held for the life of the process; it is never rotated.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService around the given signing secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret}
}

// Issue creates a signed token for the given identity.
func (s *TokenService) Issue(username string, isAdmin bool) (string, error) {
	claims := &Claims{
		Username: username,
		IsAdmin:  isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims. It
// fails on malformed input or a signature mismatch; it does not check
// expiry because Issue never sets one.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
