package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/hardikraval/medlocate-backend/pkg/auth"
	"github.com/hardikraval/medlocate-backend/pkg/auth/session"
	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
)

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.ok, s.err
}

var testJWTConfig = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}

func mintTestToken(t *testing.T, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testJWTConfig, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	require.NoError(t, err)
	return token
}

func runAuth(verifier session.Checker, authHeader string, inner http.HandlerFunc) *httptest.ResponseRecorder {
	if inner == nil {
		inner = func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }
	}
	handler := Auth(testJWTConfig, verifier, nil)(inner)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRejectsMissingToken(t *testing.T) {
	rec := runAuth(stubSessionVerifier{ok: true}, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	rec := runAuth(stubSessionVerifier{ok: true}, "Bearer invalid", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	token := mintTestToken(t, enums.UserRoleOwner)
	rec := runAuth(stubSessionVerifier{ok: false}, "Bearer "+token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthAllowsValidToken(t *testing.T) {
	token := mintTestToken(t, enums.UserRoleOwner)

	var gotUser, gotRole string
	rec := runAuth(stubSessionVerifier{ok: true}, "Bearer "+token, func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, gotUser)
	require.Equal(t, string(enums.UserRoleOwner), gotRole)
}
