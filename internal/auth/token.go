package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/nextstep-app/career-service/internal/models"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type Claims struct {
	UserID    uint            `json:"user_id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	IsStaff   bool            `json:"is_staff"`
	TokenType TokenType       `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenStatus is the explicit outcome of token validation. Callers branch on
// the status instead of unwrapping library errors.
type TokenStatus int

const (
	TokenValid TokenStatus = iota
	TokenExpired
	TokenInvalid
	TokenBlacklisted
)

func (s TokenStatus) String() string {
	switch s {
	case TokenValid:
		return "valid"
	case TokenExpired:
		return "expired"
	case TokenBlacklisted:
		return "blacklisted"
	default:
		return "invalid"
	}
}

type ValidationResult struct {
	Status TokenStatus
	Claims *Claims
}

// Blacklist rejects refresh tokens that must no longer be honored. Entries
// are keyed by JWT ID and expire together with the token itself.
type Blacklist interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
}

// Issuer creates and validates signed access/refresh token pairs.
type Issuer struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	blacklist     Blacklist
}

func NewIssuer(secret string, accessExpiry, refreshExpiry time.Duration, blacklist Blacklist) *Issuer {
	return &Issuer{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		blacklist:     blacklist,
	}
}

// IssuePair signs a fresh access/refresh token pair for the user.
func (i *Issuer) IssuePair(user *models.User) (access string, refresh string, err error) {
	access, err = i.sign(user, TokenAccess, i.accessExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = i.sign(user, TokenRefresh, i.refreshExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}

// IssueAccess signs a new access token only; used on refresh, which does not
// rotate the refresh token.
func (i *Issuer) IssueAccess(user *models.User) (string, error) {
	return i.sign(user, TokenAccess, i.accessExpiry)
}

func (i *Issuer) sign(user *models.User, typ TokenType, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IsStaff:   user.IsStaff,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses and checks a token of the wanted type. Refresh tokens are
// additionally checked against the blacklist.
func (i *Issuer) Validate(ctx context.Context, tokenString string, want TokenType) ValidationResult {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ValidationResult{Status: TokenExpired}
		}
		return ValidationResult{Status: TokenInvalid}
	}
	if !parsed.Valid || claims.TokenType != want {
		return ValidationResult{Status: TokenInvalid}
	}

	if want == TokenRefresh && i.blacklist != nil {
		listed, err := i.blacklist.Contains(ctx, claims.ID)
		if err != nil {
			// Treat blacklist outages as rejection; honoring a possibly
			// revoked token is the worse failure mode.
			return ValidationResult{Status: TokenInvalid}
		}
		if listed {
			return ValidationResult{Status: TokenBlacklisted}
		}
	}

	return ValidationResult{Status: TokenValid, Claims: claims}
}

// Revoke blacklists a refresh token for its remaining lifetime.
func (i *Issuer) Revoke(ctx context.Context, claims *Claims) error {
	if i.blacklist == nil {
		return fmt.Errorf("no blacklist configured")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return i.blacklist.Add(ctx, claims.ID, ttl)
}
