package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sneha-511/auto-attendance-tracker-backend/internal/models"
	appErrors "github.com/Sneha-511/auto-attendance-tracker-backend/pkg/errors"
)

type mockUserRepo struct {
	usersByEmail map[string]*models.User
	created      []*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{usersByEmail: make(map[string]*models.User)}
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := m.usersByEmail[email]
	return ok, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.usersByEmail[user.Email] = user
	m.created = append(m.created, user)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "attendance-tracker",
	}
}

func newAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), testAuthConfig())
}

func seedUser(t *testing.T, repo *mockUserRepo, email, password string, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:           "u-" + email,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Seed User",
		Role:         models.RoleUser,
		Active:       active,
	}
	repo.usersByEmail[email] = user
	return user
}

func TestAuthServiceRegister(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "supersecret",
		FullName: "Teacher One",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, models.RoleUser, info.Role)

	require.Len(t, repo.created, 1)
	assert.NotEqual(t, "supersecret", repo.created[0].PasswordHash, "password must be stored hashed")
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "teacher@example.com", "supersecret", true)
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "supersecret",
		FullName: "Teacher Two",
	})
	assert.Equal(t, appErrors.ErrConflict.Code, errorCode(t, err))
}

func TestAuthServiceRegisterRejectsShortPassword(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "teacher@example.com",
		Password: "short",
		FullName: "Teacher One",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, err))
}

func TestAuthServiceLoginRoundTrip(t *testing.T) {
	repo := newMockUserRepo()
	user := seedUser(t, repo, "teacher@example.com", "supersecret", true)
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "attendance-tracker", claims.Issuer)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "teacher@example.com", "supersecret", true)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "not-the-password",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, errorCode(t, err))
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ghost@example.com",
		Password: "supersecret",
	})
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, errorCode(t, err), "missing accounts and bad passwords must be indistinguishable")
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "teacher@example.com", "supersecret", false)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "supersecret",
	})
	assert.Equal(t, appErrors.ErrForbidden.Code, errorCode(t, err))
}

func TestAuthServiceValidateTokenWrongSecret(t *testing.T) {
	repo := newMockUserRepo()
	seedUser(t, repo, "teacher@example.com", "supersecret", true)
	issuer := newAuthService(repo)

	resp, err := issuer.Login(context.Background(), models.LoginRequest{
		Email:    "teacher@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	verifier := NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "another-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "attendance-tracker",
	})
	_, err = verifier.ValidateToken(resp.AccessToken)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, errorCode(t, err))
}
