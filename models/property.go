package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PropertyTypeHouse     = "House"
	PropertyTypeApartment = "Apartment"
	PropertyTypeVilla     = "Villa"
	PropertyTypePlot      = "Plot"
)

const (
	PropertyStatusAvailable = "Available"
	PropertyStatusSold      = "Sold"
	PropertyStatusPending   = "Pending"
)

type Location struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	Pincode string `bson:"pincode" json:"pincode"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	PropertyType string             `bson:"propertyType" json:"propertyType"`
	Location     Location           `bson:"location" json:"location"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Owner        primitive.ObjectID `bson:"owner" json:"owner"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyFilter is the conjunctive search filter. Zero-valued fields
// are omitted from the query rather than matched against.
type PropertyFilter struct {
	Keyword      string
	PropertyType string
	City         string
	State        string
	Status       string
	MinPrice     *float64
	MaxPrice     *float64
}

// PropertyUpdate carries a partial update. Nil fields are left untouched.
type PropertyUpdate struct {
	Title        *string
	Description  *string
	Price        *float64
	PropertyType *string
	Location     *Location
	Images       *[]string
	Status       *string
}

func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeVilla, PropertyTypePlot:
		return true
	}
	return false
}

func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyStatusAvailable, PropertyStatusSold, PropertyStatusPending:
		return true
	}
	return false
}
