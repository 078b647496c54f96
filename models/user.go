package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
	RoleAgent = "Agent"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`

	// Bookings is computed from the bookings collection at read time,
	// never stored on the user document.
	Bookings []BookingInquiry `bson:"-" json:"bookings,omitempty"`
}

// Caller is the identity derived from a verified bearer token.
type Caller struct {
	ID    primitive.ObjectID
	Email string
	Role  string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleAgent:
		return true
	}
	return false
}
