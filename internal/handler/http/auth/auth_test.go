package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("a-test-signing-secret-that-is-long-enough")

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func serve(a *Authenticator, path, authz string) (*httptest.ResponseRecorder, int64, bool) {
	var (
		viewer int64
		ok     bool
	)
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, ok = ViewerFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, viewer, ok
}

func TestMiddleware_ValidToken(t *testing.T) {
	a := New(testSecret)
	tok, err := IssueToken(testSecret, 7, time.Hour)
	require.NoError(t, err)

	rr, viewer, ok := serve(a, "/me", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, ok)
	assert.Equal(t, int64(7), viewer)
}

func TestMiddleware_Rejections(t *testing.T) {
	a := New(testSecret)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))
	past := jwt.NewNumericDate(time.Now().Add(-time.Hour))

	tests := []struct {
		name   string
		authz  string
		reason string
	}{
		{"missing header", "", reasonMissing},
		{"wrong scheme", "Basic dXNlcjpwYXNz", reasonMissing},
		{"garbage token", "Bearer not-a-jwt", reasonInvalid},
		{"wrong secret", "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("another-secret-of-reasonable-length!"),
			jwt.RegisteredClaims{Subject: "1", ExpiresAt: future}), reasonInvalid},
		{"expired", "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret,
			jwt.RegisteredClaims{Subject: "1", ExpiresAt: past}), reasonInvalid},
		{"no expiry", "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret,
			jwt.RegisteredClaims{Subject: "1"}), reasonInvalid},
		{"other hmac", "Bearer " + sign(t, jwt.SigningMethodHS512, testSecret,
			jwt.RegisteredClaims{Subject: "1", ExpiresAt: future}), reasonInvalid},
		{"non numeric subject", "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret,
			jwt.RegisteredClaims{Subject: "ann@example.com", ExpiresAt: future}), reasonSubject},
		{"zero subject", "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret,
			jwt.RegisteredClaims{Subject: "0", ExpiresAt: future}), reasonSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := authFailuresTotal.WithLabelValues(tt.reason)
			before := testutil.ToFloat64(counter)

			rr, _, ok := serve(a, "/me", tt.authz)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.False(t, ok)
			assert.Contains(t, rr.Header().Get("WWW-Authenticate"), "Bearer")
			assert.Equal(t, before+1, testutil.ToFloat64(counter))
		})
	}
}

func TestMiddleware_PublicEndpointsSkipAuth(t *testing.T) {
	a := New(testSecret)
	for _, path := range []string{"/health", "/metrics", "/categories", "/categories?x=1"} {
		rr, _, ok := serve(a, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.False(t, ok, path)
	}
}

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/health?verbose=1", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/categories", true},
		{"/categories/1/articles", false},
		{"/articles", false},
		{"/me", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPublicEndpoint(tt.path))
		})
	}
}

func TestViewerFrom(t *testing.T) {
	id, ok := ViewerFrom(WithViewer(context.Background(), 3))
	assert.True(t, ok)
	assert.Equal(t, int64(3), id)

	_, ok = ViewerFrom(context.Background())
	assert.False(t, ok)

	_, ok = ViewerFrom(WithViewer(context.Background(), 0))
	assert.False(t, ok)
}

func TestValidateSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr string
	}{
		{"empty", "", "must not be empty"},
		{"short", "tooshort", "at least 32"},
		{"repeated", strings.Repeat("x", 40), "repeated"},
		{"placeholder padded", "changeme" + strings.Repeat("1", 30), "placeholder"},
		{"placeholder exact length", "secret" + strings.Repeat("!", 26), "placeholder"},
		{"strong", "8f3c1b7e2a9d4f60b5e1c7a3d9f2e8b4c6a1d3f5", ""},
		{"placeholder prefix with entropy", "secret-9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecret(tt.secret)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireViewer(t *testing.T) {
	rr := httptest.NewRecorder()
	_, ok := RequireViewer(rr, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	id, ok := RequireViewer(rr, req.WithContext(WithViewer(req.Context(), 9)))
	assert.True(t, ok)
	assert.Equal(t, int64(9), id)
	assert.Equal(t, http.StatusOK, rr.Code)
}
