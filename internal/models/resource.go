package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource has no owner: reads are public, writes are secretary-only.
// FileName is the object key in the storage bucket; FileURL is the public URL.
type Resource struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Type            string             `bson:"type" json:"type"`
	FileURL         string             `bson:"fileUrl,omitempty" json:"fileUrl,omitempty"`
	FileName        string             `bson:"fileName,omitempty" json:"fileName,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	LastUpdatedDate time.Time          `bson:"lastUpdatedDate" json:"lastUpdatedDate"`
}

var ResourceUpdatableFields = []string{"title", "description", "type"}
