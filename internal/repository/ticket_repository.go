package repository

import (
	"context"
	"errors"

	"helpdesk-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TicketRepository struct {
	collection *mongo.Collection
}

func NewTicketRepository(db *mongo.Database) *TicketRepository {
	return &TicketRepository{collection: db.Collection("tickets")}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	result, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	ticket.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *TicketRepository) GetAll(ctx context.Context) ([]models.Ticket, error) {
	return r.find(ctx, bson.M{})
}

func (r *TicketRepository) GetByUserID(ctx context.Context, userID string) ([]models.Ticket, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *TicketRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M) ([]models.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	return tickets, nil
}
