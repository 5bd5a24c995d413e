package services

import (
	"context"
	"errors"
	"sync"

	"helpdesk-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailService) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type fakeEmailLookup struct{}

func (fakeEmailLookup) GetEmail(ctx context.Context, userID string) (string, error) {
	return userID + "@example.com", nil
}

func newTestNotifier() *Notifier {
	return NewNotifier(&fakeEmailService{}, fakeEmailLookup{})
}

type fakeUserRepo struct {
	users   map[string]*models.User
	created []*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, userID string, fields bson.M) error {
	if _, ok := f.users[userID]; !ok {
		return models.ErrNotFound
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return models.ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

func (f *fakeUserRepo) GetRole(ctx context.Context, userID string) (models.Role, error) {
	u, ok := f.users[userID]
	if !ok {
		return "", models.ErrNotFound
	}
	return u.Role, nil
}

var errIdentityDown = errors.New("identity provider unavailable")
