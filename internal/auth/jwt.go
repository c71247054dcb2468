package auth

import (
	"errors"
	"time"

	"asf-backend/internal/config"
	"asf-backend/internal/models"
	"asf-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	cfg *config.Config
}

func NewJWTManager(cfg *config.Config) *JWTManager {
	return &JWTManager{cfg: cfg}
}

// SessionLength is how long a token issued for role stays valid.
// Unknown roles get the shortest session.
func (j *JWTManager) SessionLength(role string) time.Duration {
	switch role {
	case models.RoleAdminSup:
		return j.cfg.JWT.AdminSupSession
	case models.RoleAdmin:
		return j.cfg.JWT.AdminSession
	default:
		return j.cfg.JWT.SupSession
	}
}

// GenerateToken creates a signed token for user, returning it with its lifetime
func (j *JWTManager) GenerateToken(user *models.User) (string, time.Duration, error) {
	now := timeutil.Now()
	ttl := j.SessionLength(user.Role)

	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.cfg.JWT.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

// ValidateToken verifies a JWT token and returns the claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
