package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/hardikraval/medlocate-backend/pkg/auth"
	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
)

type mockAccounts struct {
	byEmail map[string]*models.User
}

func newMockAccounts() *mockAccounts {
	return &mockAccounts{byEmail: map[string]*models.User{}}
}

func (m *mockAccounts) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockAccounts) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	m.byEmail[strings.ToLower(user.Email)] = &copied
	return user, nil
}

type mockSessions struct {
	created []string
	revoked []string
}

func (m *mockSessions) Create(ctx context.Context, accessID string) error {
	m.created = append(m.created, accessID)
	return nil
}

func (m *mockSessions) Revoke(ctx context.Context, accessID string) error {
	m.revoked = append(m.revoked, accessID)
	return nil
}

func testConfigs() (config.PasswordConfig, config.JWTConfig) {
	return config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		}, config.JWTConfig{
			Secret:            "auth-test-secret",
			Issuer:            "medlocate",
			ExpirationMinutes: 60,
		}
}

func newTestService(t *testing.T) (Service, *mockAccounts, *mockSessions) {
	t.Helper()
	accounts := newMockAccounts()
	sessions := &mockSessions{}
	passwordCfg, jwtCfg := testConfigs()
	svc, err := NewService(accounts, sessions, passwordCfg, jwtCfg)
	require.NoError(t, err)
	return svc, accounts, sessions
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, accounts, sessions := newTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Hardik",
		Email:    "Hardik@Example.com",
		Password: "long-enough-pass",
		Owner:    true,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "hardik@example.com", resp.User.Email)
	assert.Equal(t, enums.UserRoleOwner, resp.User.Role)
	require.Len(t, sessions.created, 1)

	_, jwtCfg := testConfigs()
	claims, err := pkgauth.ParseAccessToken(jwtCfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, sessions.created[0], claims.ID)

	stored, ok := accounts.byEmail["hardik@example.com"]
	require.True(t, ok)
	assert.NotEqual(t, "long-enough-pass", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Hardik",
		Email:    "dup@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Other",
		Email:    "DUP@example.com",
		Password: "long-enough-pass",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []RegisterRequest{
		{Name: "", Email: "a@b.com", Password: "long-enough-pass"},
		{Name: "A", Email: "", Password: "long-enough-pass"},
		{Name: "A", Email: "a@b.com", Password: "short"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		require.Error(t, err, "request %+v", req)
		appErr := pkgerrors.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestLogin(t *testing.T) {
	svc, _, sessions := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Hardik",
		Email:    "login@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Len(t, sessions.created, 2)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Hardik",
		Email:    "login@example.com",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@example.com",
		Password: "whatever-pass",
	})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogout(t *testing.T) {
	svc, _, sessions := newTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "some-jti"))
	assert.Equal(t, []string{"some-jti"}, sessions.revoked)

	err := svc.Logout(context.Background(), "  ")
	require.Error(t, err)
}
