package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/toolhub/backoffice/pkg/auth"
)

// AuthMiddleware validates the Bearer token the identity provider issued and
// stashes the admin identity on the request context.
func AuthMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenStr == "" {
				respondError(w, http.StatusUnauthorized, "Missing authentication token")
				return
			}

			claims, err := auth.ValidateToken(secret, tokenStr)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Invalid authentication token")
				return
			}

			ctx := context.WithValue(r.Context(), "admin_email", claims.Email)
			ctx = context.WithValue(ctx, "admin_role", claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
