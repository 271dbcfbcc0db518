package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/meridian-crm/meridian-crm/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	users  map[int64]*User
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[int64]*User), nextID: 1}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	for _, user := range m.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepository) List(ctx context.Context) ([]User, error) {
	var result []User
	for _, user := range m.users {
		result = append(result, *user)
	}
	return result, nil
}

func (m *mockRepository) Create(ctx context.Context, user User) (int64, error) {
	id := m.nextID
	m.nextID++
	user.ID = id
	m.users[id] = &user
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	user, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["password_hash"]; ok {
		user.PasswordHash = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		user.IsActive = v.(bool)
	}
	if v, ok := updates["reset_token"]; ok {
		if v == nil {
			user.ResetToken = nil
		} else {
			token := v.(string)
			user.ResetToken = &token
		}
	}
	if v, ok := updates["reset_token_expiry"]; ok {
		if v == nil {
			user.ResetTokenExpiry = nil
		} else {
			expiry := v.(time.Time)
			user.ResetTokenExpiry = &expiry
		}
	}
	return nil
}

func newTestService() (*Service, *mockRepository) {
	repo := newMockRepository()
	return NewService(repo, "test-secret", time.Hour), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "Asha@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, shared.RoleSales, user.Role)
	assert.True(t, user.IsActive)

	resp, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterRequest{Name: "Other", Email: "asha@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)
	repo.users[user.ID].IsActive = false

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSetUserActiveControlsLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	deactivated, err := svc.SetUserActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	reactivated, err := svc.SetUserActive(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.SetUserActive(ctx, 999, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseTokenRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret", Role: "Admin"})
	require.NoError(t, err)
	resp, err := svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	user, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.UserID)
	assert.Equal(t, shared.RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "newpassword1"}))

	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "newpassword1"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, LoginRequest{Email: "asha@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Name: "Asha", Email: "asha@example.com", Password: "supersecret"})
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "asha@example.com")
	require.NoError(t, err)
	expired := time.Now().Add(-time.Minute)
	repo.users[user.ID].ResetTokenExpiry = &expired

	err = svc.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "newpassword1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
