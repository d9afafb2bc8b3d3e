package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer mints and verifies the HMAC bearer tokens consumed by the API.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer constructs a token issuer with the given signing secret and lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token embedding the user identity and role claims.
func (t *TokenIssuer) Issue(userID uint, username string, role Role) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"role":     role.String(),
		"iat":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Resolve verifies a bearer token and extracts the principal it carries.
func (t *TokenIssuer) Resolve(tokenString string) (Principal, error) {
	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("invalid token claims")
	}

	principal := Principal{}

	if sub, ok := claims["sub"]; ok {
		if id, err := normalizeUserID(sub); err == nil {
			principal.UserID = id
		}
	}
	if username, ok := claims["username"].(string); ok {
		principal.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		principal.Role = ParseRole(role)
	}

	if !principal.IsAuthenticated() {
		return Principal{}, fmt.Errorf("token missing identity claims")
	}

	return principal, nil
}

func normalizeUserID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}
