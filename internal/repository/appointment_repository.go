package repository

import (
	"context"
	"errors"

	"helpdesk-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository struct {
	collection *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{collection: db.Collection("appointments")}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	result, err := r.collection.InsertOne(ctx, appointment)
	if err != nil {
		return err
	}
	appointment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) GetAll(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{})
}

func (r *AppointmentRepository) GetByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// CountByDateTime is the existence check behind the booking-uniqueness rule.
// Read-then-write: two concurrent creates for the same slot can both pass.
func (r *AppointmentRepository) CountByDateTime(ctx context.Context, date, timeSlot string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"appointmentDate": date,
		"appointmentTime": timeSlot,
	})
}

func (r *AppointmentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}
