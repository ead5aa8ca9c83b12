package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialMessage is shown to users whenever no usable token is present.
const CredentialMessage = "Token is missing or invalid."

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// CredentialChecker decides whether a token may be forwarded to the backend.
type CredentialChecker interface {
	Check(token string) error
}

// TokenChecker treats tokens as opaque bearer credentials unless a secret is
// configured, in which case the token must also be a valid HS256 JWT.
type TokenChecker struct {
	secret []byte
	now    func() time.Time
}

func NewTokenChecker(secret string) *TokenChecker {
	return &TokenChecker{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

func (c *TokenChecker) Check(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrMissingToken
	}
	for _, r := range token {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: unexpected character in token", ErrInvalidToken)
		}
	}
	if len(c.secret) == 0 {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithTimeFunc(c.now))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

var _ CredentialChecker = (*TokenChecker)(nil)

// SharedSecretChecker admits callers presenting the configured secret. With
// no secret configured it admits nobody.
type SharedSecretChecker struct {
	secret []byte
}

func NewSharedSecretChecker(secret string) *SharedSecretChecker {
	return &SharedSecretChecker{secret: []byte(strings.TrimSpace(secret))}
}

func (c *SharedSecretChecker) Check(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrMissingToken
	}
	if len(c.secret) == 0 || subtle.ConstantTimeCompare([]byte(token), c.secret) != 1 {
		return ErrInvalidToken
	}
	return nil
}

var _ CredentialChecker = (*SharedSecretChecker)(nil)
