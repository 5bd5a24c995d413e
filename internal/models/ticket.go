package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TicketStatus string

const (
	TicketInProgress TicketStatus = "In Progress"
	TicketResolved   TicketStatus = "Resolved"
)

var TicketStatuses = []string{string(TicketInProgress), string(TicketResolved)}

func (s TicketStatus) Valid() bool {
	return s == TicketInProgress || s == TicketResolved
}

type Ticket struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Status          TicketStatus       `bson:"status" json:"status"`
	Feedback        string             `bson:"feedback" json:"feedback"`
	UserID          string             `bson:"userId" json:"userId"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	LastUpdatedDate time.Time          `bson:"lastUpdatedDate" json:"lastUpdatedDate"`
}

var TicketUpdatableFields = []string{"title", "description", "status", "feedback"}
