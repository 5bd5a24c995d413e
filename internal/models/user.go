package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleSecretary Role = "secretary"
)

// User documents are keyed by the identity provider's subject id, not by a
// generated ObjectID. Credentials live in the identity provider only.
type User struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	FirstName       string    `bson:"firstName" json:"firstName"`
	LastName        string    `bson:"lastName" json:"lastName"`
	Phone           string    `bson:"phone" json:"phone"`
	Role            Role      `bson:"role" json:"role"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	LastUpdatedDate time.Time `bson:"lastUpdatedDate" json:"lastUpdatedDate"`
}

// UserUpdatableFields is the allow-list for self-service profile updates.
var UserUpdatableFields = []string{"firstName", "lastName", "phone"}
