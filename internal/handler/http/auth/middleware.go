// Package auth is the authentication collaborator: it turns a bearer JWT into
// the viewer id the use cases act for. Credentials and sign-up live elsewhere.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"guidepedia/internal/handler/http/respond"
)

type ctxKey string

const ctxViewer ctxKey = "viewer"

// Reasons reported by auth_failures_total.
const (
	reasonMissing = "missing_token"
	reasonInvalid = "invalid_token"
	reasonSubject = "invalid_subject"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
	errInvalidSub   = errors.New("invalid sub claim")
)

// Authenticator validates HS256 bearer tokens whose subject is a user id.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// New returns an Authenticator for the given signing secret.
func New(secret []byte) *Authenticator {
	return &Authenticator{secret: secret, now: time.Now}
}

// WithViewer stores the acting user id in the context.
func WithViewer(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxViewer, userID)
}

// ViewerFrom returns the acting user id set by the middleware.
func ViewerFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ctxViewer).(int64)
	return id, ok && id > 0
}

// RequireViewer returns the viewer id or answers 401 when the request was
// not authenticated.
func RequireViewer(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := ViewerFrom(r.Context())
	if !ok {
		unauthorized(w, errMissingToken)
	}
	return id, ok
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="guidepedia"`)
	respond.JSON(w, http.StatusUnauthorized, respond.ErrorBody{
		Error: fmt.Sprintf("unauthorized: %v", err),
		Code:  "unauthorized",
	})
}

// Middleware requires a valid token on every endpoint that is not public and
// stores the subject as the viewer id.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsPublicEndpoint(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := a.now()
		viewer, reason, err := a.viewer(r.Header.Get("Authorization"))
		RecordAuthzCheckDuration(a.now().Sub(start).Seconds())
		if err != nil {
			RecordAuthFailure(reason)
			unauthorized(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), viewer)))
	})
}

func (a *Authenticator) viewer(authz string) (int64, string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return 0, reasonMissing, errMissingToken
	}

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(strings.TrimPrefix(authz, prefix), &claims,
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !tok.Valid {
		return 0, reasonInvalid, errInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, reasonSubject, errInvalidSub
	}
	return id, "", nil
}

// IssueToken signs a token for userID that expires after ttl. It backs the
// development token printed at startup and tests.
func IssueToken(secret []byte, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return tok.SignedString(secret)
}
