package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/db/models"
	pkgerrors "github.com/hardikraval/medlocate-backend/pkg/errors"
	"github.com/hardikraval/medlocate-backend/pkg/enums"
	"github.com/hardikraval/medlocate-backend/pkg/security"
)

type mockUserStore struct {
	users map[uuid.UUID]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[uuid.UUID]*models.User{}}
}

func (m *mockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserStore) Update(ctx context.Context, user *models.User) (*models.User, error) {
	copied := *user
	m.users[user.ID] = &copied
	return user, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

func testPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func seedUser(t *testing.T, store *mockUserStore, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordCfg())
	require.NoError(t, err)
	user := &models.User{
		ID:           uuid.New(),
		Name:         "Hardik",
		Email:        "hardik@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleUser,
	}
	store.users[user.ID] = user
	return user
}

func TestMe(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	dto, err := svc.Me(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, dto.ID)
	assert.Equal(t, "hardik@example.com", dto.Email)
}

func TestMeNotFound(t *testing.T) {
	svc, err := NewService(newMockUserStore(), testPasswordCfg())
	require.NoError(t, err)

	_, err = svc.Me(context.Background(), uuid.New())
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateProfile(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	name := "Hardik Raval"
	dto, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hardik Raval", dto.Name)

	blank := "   "
	_, err = svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{Name: &blank})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestChangePassword(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "initial-pass",
		NewPassword:     "rotated-pass",
	})
	require.NoError(t, err)

	ok, err := security.VerifyPassword("rotated-pass", store.users[user.ID].PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "not-the-password",
		NewPassword:     "rotated-pass",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestChangePasswordTooShort(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, ChangePasswordInput{
		CurrentPassword: "initial-pass",
		NewPassword:     "short",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestDeleteAccount(t *testing.T) {
	store := newMockUserStore()
	user := seedUser(t, store, "initial-pass")
	svc, err := NewService(store, testPasswordCfg())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID))
	_, err = svc.Me(context.Background(), user.ID)
	require.Error(t, err)
}
