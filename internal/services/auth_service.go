package services

import (
	"context"
	"time"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/utils"
)

// IdentityProvider is the external credential store. It owns email/password
// verification and the email-verification flow; this service never sees or
// stores passwords.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	SignIn(ctx context.Context, email, password string) (*utils.IdentityUser, error)
	GetEmail(ctx context.Context, userID string) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

type AuthService struct {
	users    UserRepository
	identity IdentityProvider
}

func NewAuthService(users UserRepository, identity IdentityProvider) *AuthService {
	return &AuthService{users: users, identity: identity}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register provisions the credential with the identity provider and stores
// the profile document keyed by the returned subject id. New accounts always
// start with the default role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	userID, err := s.identity.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user := &models.User{
		ID:              userID,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Phone:           in.Phone,
		Role:            models.RoleUser,
		CreatedAt:       now,
		LastUpdatedDate: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", err
	}

	return userID, nil
}

// Login verifies credentials with the identity provider and resolves the
// caller's role from their user document. Unverified email is rejected.
func (s *AuthService) Login(ctx context.Context, email, password string) (*utils.IdentityUser, models.Role, error) {
	user, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if !user.EmailVerified {
		return nil, "", utils.ErrEmailNotVerified
	}

	role, err := s.users.GetRole(ctx, user.ID)
	if err != nil {
		role = models.RoleUser
	}
	return user, role, nil
}
