package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cashly/loan-engine/pkg/response"
)

type contextKey string

const userIDKey contextKey = "userID"

// AuthMiddleware verifies the Bearer token and stows the user ID in
// the request context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Unauthorized(w, "Нэвтрэх шаардлагатай")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "Нэвтрэх хугацаа дууссан байна")
				return
			}

			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok {
				response.Unauthorized(w, "Нэвтрэх хугацаа дууссан байна")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				response.Unauthorized(w, "Нэвтрэх хугацаа дууссан байна")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user ID set by
// AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
