package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"asf-backend/internal/auth"
	"asf-backend/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, id int64, role string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	Repo       UserStore
	JWTManager *auth.JWTManager
}

func NewUserService(repo UserStore, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Session is a freshly issued login token
type Session struct {
	Token string
	TTL   time.Duration
	User  *models.User
}

// Signup creates an active user. Role defaults to supervisor.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.FirstName == "" || req.LastName == "" || email == "" || req.Password == "" {
		return nil, invalid("All fields are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleSupervisor
	}
	if !models.ValidRole(role) {
		return nil, invalid("Invalid role. Must be one of: sup, admin, admin-sup")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and issues a token sized to the user's role
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, invalid("email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, missing("User", err)
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, TTL: ttl, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.Repo.Get(ctx, id)
	return u, missing("User", err)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) UpdateRole(ctx context.Context, req *models.UpdateRoleRequest) (*models.User, error) {
	if req.UserID == 0 || req.NewRole == "" {
		return nil, invalid("userId and newRole are required")
	}
	if !models.ValidRole(req.NewRole) {
		return nil, invalid("Invalid role. Must be one of: sup, admin, admin-sup")
	}
	u, err := s.Repo.UpdateRole(ctx, req.UserID, req.NewRole)
	return u, missing("User", err)
}

// DeleteUser deletes a user
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return missing("User", s.Repo.Delete(ctx, id))
}

// EnsureAdmin creates an admin-sup account unless the email is already
// registered. created is false when the account existed.
func (s *UserService) EnsureAdmin(ctx context.Context, firstName, lastName, email, password string) (created bool, err error) {
	_, err = s.Signup(ctx, &models.SignupRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
		Role:      models.RoleAdminSup,
	})
	if errors.Is(err, ErrEmailTaken) {
		return false, nil
	}
	return err == nil, err
}
