package services

import (
	"context"
	"time"

	"helpdesk-app/internal/models"
	"helpdesk-app/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	GetAll(ctx context.Context) ([]models.Appointment, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Appointment, error)
	CountByDateTime(ctx context.Context, date, timeSlot string) (int64, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AppointmentService struct {
	repo     AppointmentRepository
	notifier *Notifier
	now      func() time.Time
}

func NewAppointmentService(repo AppointmentRepository, notifier *Notifier) *AppointmentService {
	return &AppointmentService{repo: repo, notifier: notifier, now: time.Now}
}

// CheckSlot runs the full availability check for a (date, time) pair. The
// same path gates appointment creation, so the query and the gate can never
// disagree.
func (s *AppointmentService) CheckSlot(ctx context.Context, date, timeSlot string) error {
	if err := ValidateSlot(date, timeSlot, s.now()); err != nil {
		return err
	}

	count, err := s.repo.CountByDateTime(ctx, date, timeSlot)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrSlotTaken
	}
	return nil
}

type CreateAppointmentInput struct {
	Title           string
	Description     string
	AppointmentDate string
	AppointmentTime string
}

func (s *AppointmentService) Create(ctx context.Context, sess *utils.Session, in CreateAppointmentInput) (*models.Appointment, error) {
	if err := s.CheckSlot(ctx, in.AppointmentDate, in.AppointmentTime); err != nil {
		return nil, err
	}

	now := s.now()
	appointment := &models.Appointment{
		Title:           in.Title,
		Description:     in.Description,
		AppointmentDate: in.AppointmentDate,
		AppointmentTime: in.AppointmentTime,
		Status:          models.AppointmentInProgress,
		Feedback:        "",
		UserID:          sess.UserID,
		CreatedAt:       now,
		LastUpdatedDate: now,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notifier.AppointmentCreated(appointment)
	return appointment, nil
}

func (s *AppointmentService) Get(ctx context.Context, sess *utils.Session, id string) (*models.Appointment, error) {
	appointment, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, appointment.UserID); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return s.repo.GetAll(ctx)
}

// GetForUser lists a user's appointments. An empty userID defaults to the caller.
func (s *AppointmentService) GetForUser(ctx context.Context, sess *utils.Session, userID string) ([]models.Appointment, error) {
	if userID == "" {
		userID = sess.UserID
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(ctx, userID)
}

// Update applies a secretary edit. Slot validity is deliberately not re-run
// here: rescheduling may move an appointment onto any date/time, including a
// taken slot.
func (s *AppointmentService) Update(ctx context.Context, id string, payload map[string]interface{}) error {
	appointment, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if raw, ok := payload["status"]; ok {
		status, _ := raw.(string)
		if !models.AppointmentStatus(status).Valid() {
			return &models.InvalidStatusError{Allowed: models.AppointmentStatuses}
		}
	}

	fields := bson.M{}
	for _, name := range models.AppointmentUpdatableFields {
		if v, ok := payload[name]; ok {
			fields[name] = v
		}
	}
	if len(fields) == 0 {
		return models.ErrNoValidFields
	}
	fields["lastUpdatedDate"] = s.now()

	if err := s.repo.UpdateFields(ctx, appointment.ID, fields); err != nil {
		return err
	}

	updated, err := s.repo.GetByID(ctx, appointment.ID)
	if err == nil {
		s.notifier.AppointmentUpdated(updated)
	}
	return nil
}

func (s *AppointmentService) Delete(ctx context.Context, sess *utils.Session, id string) error {
	appointment, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}
	if err := utils.Authorize(sess, utils.SelfOrSecretary, appointment.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, appointment.ID)
}

func (s *AppointmentService) getByID(ctx context.Context, id string) (*models.Appointment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}
	return s.repo.GetByID(ctx, objID)
}
