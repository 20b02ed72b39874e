package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/toolhub/backoffice/pkg/auth"
)

var testSecret = []byte("test-secret")

func signTestToken(t *testing.T, email, role string, expiresAt time.Time) string {
	t.Helper()
	claims := auth.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func authProbe() (http.Handler, *bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(testSecret)(next), &called
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	handler, called := authProbe()

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/v1/orders", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if *called {
		t.Error("expected the handler not to be reached")
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler, called := authProbe()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders", nil)
	request.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
	if *called {
		t.Error("expected the handler not to be reached")
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	handler, _ := authProbe()

	token := signTestToken(t, "mary@toolhub.co.ke", "admin", time.Now().Add(-time.Hour))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	handler, called := authProbe()

	token := signTestToken(t, "mary@toolhub.co.ke", "admin", time.Now().Add(time.Hour))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/v1/orders", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, recorder.Code)
	}
	if !*called {
		t.Error("expected the handler to be reached")
	}
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if getRequestID(r.Context()) == "" {
			t.Error("expected a request id on the context")
		}
	})

	recorder := httptest.NewRecorder()
	RequestIDMiddleware(next).ServeHTTP(recorder, httptest.NewRequest("GET", "/health", nil))

	if recorder.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}
}
