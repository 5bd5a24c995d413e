package services

import (
	"context"
	"time"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	UpdateFields(ctx context.Context, userID string, fields bson.M) error
	Delete(ctx context.Context, userID string) error
	GetRole(ctx context.Context, userID string) (models.Role, error)
}

type UserService struct {
	repo     UserRepository
	identity IdentityProvider
}

func NewUserService(repo UserRepository, identity IdentityProvider) *UserService {
	return &UserService{repo: repo, identity: identity}
}

func (s *UserService) Get(ctx context.Context, sess *utils.Session, userID string) (*models.User, error) {
	if err := utils.Authorize(sess, utils.SelfOrSecretary, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.repo.GetAll(ctx)
}

// Update filters the payload to the profile allow-list. Unknown fields are
// dropped silently; an empty result is rejected.
func (s *UserService) Update(ctx context.Context, sess *utils.Session, userID string, payload map[string]interface{}) error {
	if err := utils.Authorize(sess, utils.SelfOrSecretary, userID); err != nil {
		return err
	}

	fields := bson.M{}
	for _, name := range models.UserUpdatableFields {
		if v, ok := payload[name]; ok {
			fields[name] = v
		}
	}
	if len(fields) == 0 {
		return models.ErrNoValidFields
	}
	fields["lastUpdatedDate"] = time.Now()

	return s.repo.UpdateFields(ctx, userID, fields)
}

// Delete removes the credential first, then the profile document. If the
// document delete fails after the credential is gone, the profile is left
// orphaned; there is no cross-store transaction.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}
	if err := s.identity.DeleteUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}
