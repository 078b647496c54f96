package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DefaultSiteName = "Real Estate Hub"

// Setting is the single mutable site configuration record. It is created
// lazily on the first update and removed entirely on reset.
type Setting struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SiteName        string             `bson:"siteName" json:"siteName"`
	ContactEmail    string             `bson:"contactEmail" json:"contactEmail"`
	MaintenanceMode bool               `bson:"maintenanceMode" json:"maintenanceMode"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
