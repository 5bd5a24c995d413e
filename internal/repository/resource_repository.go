package repository

import (
	"context"
	"errors"

	"helpdesk-app/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ResourceRepository struct {
	collection *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{collection: db.Collection("resources")}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	result, err := r.collection.InsertOne(ctx, resource)
	if err != nil {
		return err
	}
	resource.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ResourceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	var resource models.Resource
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resource)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &resource, nil
}

func (r *ResourceRepository) GetAll(ctx context.Context) ([]models.Resource, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resources []models.Resource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	return resources, nil
}

func (r *ResourceRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
