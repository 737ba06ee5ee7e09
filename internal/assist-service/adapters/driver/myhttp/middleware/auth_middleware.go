package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"road-assist/internal/assist-service/adapters/driver/myhttp/handle"

	"github.com/golang-jwt/jwt"
)

const (
	RoleUser     = "user"
	RoleProvider = "provider"

	HeaderUserId = "X-UserId"
	HeaderRole   = "X-Role"
)

type AuthMiddleware struct {
	accessSecret string
}

func NewAuthMiddleware(accessSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		accessSecret: accessSecret,
	}
}

// Wrap rejects requests without a valid token, and when role is
// non-empty also requires that role claim.
func (am *AuthMiddleware) Wrap(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, tokenRole, err := am.parse(r)
		if err != nil {
			handle.JsonError(w, http.StatusUnauthorized, err)
			return
		}

		if role != "" && tokenRole != role {
			handle.JsonError(w, http.StatusForbidden, fmt.Errorf("access denied, %s role required", role))
			return
		}

		r.Header.Set(HeaderUserId, userId)
		r.Header.Set(HeaderRole, tokenRole)

		next.ServeHTTP(w, r)
	})
}

// WrapOptional is the two-outcome policy: a valid token yields an
// authenticated context (identity headers set), anything else yields an
// anonymous one (identity headers cleared). It never rejects.
func (am *AuthMiddleware) WrapOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId, tokenRole, err := am.parse(r)
		if err != nil {
			r.Header.Del(HeaderUserId)
			r.Header.Del(HeaderRole)
			next.ServeHTTP(w, r)
			return
		}

		r.Header.Set(HeaderUserId, userId)
		r.Header.Set(HeaderRole, tokenRole)
		next.ServeHTTP(w, r)
	})
}

func (am *AuthMiddleware) parse(r *http.Request) (userId, role string, err error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return "", "", fmt.Errorf("no token provided")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(am.accessSecret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid or expired token")
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid claims")
	}

	userId, ok = claims["user_id"].(string)
	if !ok || userId == "" {
		return "", "", fmt.Errorf("user_id not found in token")
	}

	role, ok = claims["role"].(string)
	if !ok || role == "" {
		return "", "", fmt.Errorf("role not found in token")
	}

	return userId, role, nil
}
