package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"community_board/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// JWTClaims custom claims for JWT
type JWTClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the caller identity carried by the claims.
func (c *JWTClaims) Identity() model.Identity {
	return model.Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey string
	expiry    time.Duration
}

// NewJWTUtil creates a new JWTUtil. A zero expiry issues tokens without an
// exp claim, so they never expire.
func NewJWTUtil(secretKey string, expiry time.Duration) *JWTUtil {
	return &JWTUtil{secretKey: secretKey, expiry: expiry}
}

// GenerateToken signs a token for the given identity
func (ju *JWTUtil) GenerateToken(id model.Identity) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: id.UserID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Subject:  strconv.Itoa(id.UserID),
		},
	}
	if ju.expiry != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ju.expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ju.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks the signature and the expiry. Once an expiry is
// configured, tokens without an exp claim are rejected too.
// Every failure wraps ErrInvalidToken.
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	var opts []jwt.ParserOption
	if ju.expiry != 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ju.secretKey), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Expiry is the configured token lifetime, zero when tokens never expire.
func (ju *JWTUtil) Expiry() time.Duration {
	return ju.expiry
}
