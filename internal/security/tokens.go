package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired, or has a bad signature.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySecret is returned when issuing is attempted without a signing
	// secret. An empty secret is a valid HMAC key, so it must be rejected
	// explicitly or tokens signed with it would verify.
	ErrEmptySecret = errors.New("empty signing secret")
)

// SessionClaims holds JWT claims for the session token. The subject is the
// employee's email.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// TokenProvider issues and verifies stateless HS256 session tokens carrying
// the caller's email. The server holds no session state; a token is valid
// until its expiry.
type TokenProvider struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenProvider returns a TokenProvider signing with the given secret.
// issuer is set on claims and checked on verification. The secret must be
// non-empty; a provider with an empty secret refuses to issue and rejects
// every token.
func NewTokenProvider(secret []byte, issuer string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{secret: secret, issuer: issuer, ttl: ttl}
}

// Issue issues a session token for the given email with the provider's TTL.
// Returns the signed token and its expiration time.
func (p *TokenProvider) Issue(email string) (token string, expiresAt time.Time, err error) {
	return p.issueAt(email, time.Now().UTC())
}

func (p *TokenProvider) issueAt(email string, now time.Time) (string, time.Time, error) {
	if len(p.secret) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}
	expiresAt := now.Add(p.ttl)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    p.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates the token (signature, exp, iss) and returns the
// email it was issued for. Returns ErrInvalidToken on any failure.
func (p *TokenProvider) Verify(tokenString string) (email string, err error) {
	if len(p.secret) == 0 {
		return "", ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
