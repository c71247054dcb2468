package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"asf-backend/internal/auth"
	"asf-backend/internal/config"
	"asf-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *memUsers) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "asf-backend"
	cfg.JWT.AdminSupSession = 24 * time.Hour
	cfg.JWT.AdminSession = 12 * time.Hour
	cfg.JWT.SupSession = 30 * time.Minute

	users := &memUsers{}
	return NewUserService(users, auth.NewJWTManager(cfg)), users
}

func signupRequest(email, role string) *models.SignupRequest {
	return &models.SignupRequest{
		FirstName: "Priya",
		LastName:  "Nair",
		Email:     email,
		Password:  "secret123",
		Role:      role,
	}
}

func TestSignup(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupRequest(" Priya@ASF.in ", ""))
	require.NoError(t, err)
	assert.Equal(t, "priya@asf.in", u.Email)
	assert.Equal(t, models.RoleSupervisor, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	require.Len(t, users.rows, 1)

	_, err = svc.Signup(ctx, signupRequest("priya@asf.in", models.RoleAdmin))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Signup(ctx, signupRequest("other@asf.in", "owner"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Signup(ctx, &models.SignupRequest{Email: "x@asf.in"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupRequest("admin@asf.in", models.RoleAdminSup))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		check    func(t *testing.T, s *Session, err error)
	}{
		{
			name: "valid", email: "ADMIN@asf.in", password: "secret123",
			check: func(t *testing.T, s *Session, err error) {
				require.NoError(t, err)
				assert.NotEmpty(t, s.Token)
				assert.Equal(t, 24*time.Hour, s.TTL)

				claims, err := svc.JWTManager.ValidateToken(s.Token)
				require.NoError(t, err)
				assert.Equal(t, s.User.ID, claims.UserID)
				assert.Equal(t, models.RoleAdminSup, claims.Role)
			},
		},
		{
			name: "wrong password", email: "admin@asf.in", password: "nope",
			check: func(t *testing.T, _ *Session, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name: "unknown user", email: "ghost@asf.in", password: "secret123",
			check: func(t *testing.T, _ *Session, err error) {
				var nf *NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "User", nf.Resource)
			},
		},
		{
			name: "missing fields", email: "", password: "",
			check: func(t *testing.T, _ *Session, err error) {
				assert.ErrorIs(t, err, ErrInvalidInput)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svc.Login(ctx, &models.LoginRequest{Email: tt.email, Password: tt.password})
			tt.check(t, s, err)
		})
	}
}

func TestUpdateRoleAndDelete(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupRequest("sup@asf.in", ""))
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, &models.UpdateRoleRequest{UserID: u.ID, NewRole: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	_, err = svc.UpdateRole(ctx, &models.UpdateRoleRequest{UserID: u.ID, NewRole: "root"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateRole(ctx, &models.UpdateRoleRequest{UserID: 404, NewRole: models.RoleAdmin})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteUser(ctx, u.ID))
	_, err = svc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, u.ID), ErrNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "Site", "Admin", "root@asf.in", "changeme")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleAdminSup, users.rows[0].Role)

	created, err = svc.EnsureAdmin(ctx, "Site", "Admin", "root@asf.in", "changeme")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, users.rows, 1)
}
