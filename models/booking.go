package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingStatusPending  = "Pending"
	BookingStatusApproved = "Approved"
	BookingStatusRejected = "Rejected"

	// BookingStatusCompleted is a declared status with no exposed
	// transition into it. It is reachable only by data migration.
	BookingStatusCompleted = "Completed"
)

type BookingInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Property  primitive.ObjectID `bson:"property" json:"property"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Message   string             `bson:"message" json:"message"`
	VisitDate time.Time          `bson:"visitDate" json:"visitDate"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// BookingFilter scopes a booking listing. A nil User means no user scoping.
type BookingFilter struct {
	User   *primitive.ObjectID
	Status string
}

func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected, BookingStatusCompleted:
		return true
	}
	return false
}
