package services

import (
	"context"
	"time"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	GetAll(ctx context.Context) ([]models.Ticket, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Ticket, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TicketService struct {
	repo     TicketRepository
	notifier *Notifier
}

func NewTicketService(repo TicketRepository, notifier *Notifier) *TicketService {
	return &TicketService{repo: repo, notifier: notifier}
}

func (s *TicketService) Create(ctx context.Context, sess *utils.Session, title, description string) (*models.Ticket, error) {
	now := time.Now()
	ticket := &models.Ticket{
		Title:           title,
		Description:     description,
		Status:          models.TicketInProgress,
		Feedback:        "",
		UserID:          sess.UserID,
		CreatedAt:       now,
		LastUpdatedDate: now,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.notifier.TicketCreated(ticket)
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, sess *utils.Session, id string) (*models.Ticket, error) {
	ticket, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, ticket.UserID); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) GetAll(ctx context.Context) ([]models.Ticket, error) {
	return s.repo.GetAll(ctx)
}

// GetForUser lists a user's tickets. An empty userID defaults to the caller.
func (s *TicketService) GetForUser(ctx context.Context, sess *utils.Session, userID string) ([]models.Ticket, error) {
	if userID == "" {
		userID = sess.UserID
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

// Update applies a secretary edit: status is checked against the ticket enum,
// the payload is filtered to the allow-list, and the owner is notified.
func (s *TicketService) Update(ctx context.Context, id string, payload map[string]interface{}) error {
	ticket, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if raw, ok := payload["status"]; ok {
		status, _ := raw.(string)
		if !models.TicketStatus(status).Valid() {
			return &models.InvalidStatusError{Allowed: models.TicketStatuses}
		}
	}

	fields := bson.M{}
	for _, name := range models.TicketUpdatableFields {
		if v, ok := payload[name]; ok {
			fields[name] = v
		}
	}
	if len(fields) == 0 {
		return models.ErrNoValidFields
	}
	fields["lastUpdatedDate"] = time.Now()

	if err := s.repo.UpdateFields(ctx, ticket.ID, fields); err != nil {
		return err
	}

	updated, err := s.repo.GetByID(ctx, ticket.ID)
	if err == nil {
		s.notifier.TicketUpdated(updated)
	}
	return nil
}

func (s *TicketService) Delete(ctx context.Context, sess *utils.Session, id string) error {
	ticket, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, ticket.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, ticket.ID)
}

func (s *TicketService) getByID(ctx context.Context, id string) (*models.Ticket, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, objID)
}
