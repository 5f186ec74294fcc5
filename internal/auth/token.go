// Package auth issues and verifies the signed bearer tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"medialane/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "medialane-api"
	audience = "medialane-client"

	// AdminTokenTTL applies to tokens issued by the admin login.
	AdminTokenTTL = 72 * time.Hour
	// ClientTokenTTL applies to tokens issued by the client login and signup.
	ClientTokenTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned for any token that fails to parse or verify.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload.
type Claims struct {
	ID       uint        `json:"id"`
	UserName string      `json:"userName"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager returns a TokenManager for secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// TTLFor returns the token lifetime for a role.
func TTLFor(role models.Role) time.Duration {
	if role.IsAdmin() {
		return AdminTokenTTL
	}
	return ClientTokenTTL
}

// Issue signs a token for user that expires after ttl.
func (m *TokenManager) Issue(user *models.User, ttl time.Duration) (string, *Claims, error) {
	if len(m.secret) == 0 {
		return "", nil, fmt.Errorf("JWT secret not configured")
	}

	now := m.now()
	claims := &Claims{
		ID:       user.ID,
		UserName: user.UserName,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Parse verifies the signature, expiry, issuer and audience of tokenString.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == 0 || claims.UserName == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
