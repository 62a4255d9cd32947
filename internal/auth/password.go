package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nextstep-app/career-service/internal/models"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// EncodeUID encodes a user id for password-reset links.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(s string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid uid encoding: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid uid: %w", err)
	}
	return uint(id), nil
}

type resetClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ResetTokens issues time-limited password-reset tokens. Each token is signed
// with a key derived from the global secret and the user's current password
// hash, so completing a reset invalidates any outstanding link for that user.
type ResetTokens struct {
	secret []byte
	expiry time.Duration
}

func NewResetTokens(secret string, expiry time.Duration) *ResetTokens {
	return &ResetTokens{secret: []byte(secret), expiry: expiry}
}

func (r *ResetTokens) userKey(user *models.User) []byte {
	mac := hmac.New(sha256.New, r.secret)
	mac.Write([]byte(user.Password))
	return mac.Sum(nil)
}

func (r *ResetTokens) Make(user *models.User) (string, error) {
	now := time.Now()
	claims := &resetClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(r.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.userKey(user))
}

// Check reports whether the token is a live reset token for this user.
func (r *ResetTokens) Check(user *models.User, tokenString string) bool {
	claims := &resetClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return r.userKey(user), nil
	})
	if err != nil || !parsed.Valid {
		return false
	}
	return claims.UserID == user.ID
}
