package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentInProgress AppointmentStatus = "In Progress"
	AppointmentApproved   AppointmentStatus = "Approved"
	AppointmentRejected   AppointmentStatus = "Rejected"
)

var AppointmentStatuses = []string{
	string(AppointmentInProgress),
	string(AppointmentApproved),
	string(AppointmentRejected),
}

func (s AppointmentStatus) Valid() bool {
	return s == AppointmentInProgress || s == AppointmentApproved || s == AppointmentRejected
}

// AppointmentDate is stored as a plain "2006-01-02" calendar date and
// AppointmentTime as one of the fixed slot labels ("09:00 AM" ... "04:30 PM").
type Appointment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate"`
	AppointmentTime string             `bson:"appointmentTime" json:"appointmentTime"`
	Status          AppointmentStatus  `bson:"status" json:"status"`
	Feedback        string             `bson:"feedback" json:"feedback"`
	UserID          string             `bson:"userId" json:"userId"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	LastUpdatedDate time.Time          `bson:"lastUpdatedDate" json:"lastUpdatedDate"`
}

var AppointmentUpdatableFields = []string{
	"title", "description", "appointmentDate", "appointmentTime", "status", "feedback",
}
