package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection      = "users"
	propertiesCollection = "properties"
	bookingsCollection   = "bookings"
	reviewsCollection    = "reviews"
	settingsCollection   = "settings"
)

// NewMongoStore wires every entity store to its collection.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Users:      &mongoUserStore{col: db.Collection(usersCollection)},
		Properties: &mongoPropertyStore{col: db.Collection(propertiesCollection)},
		Bookings:   &mongoBookingStore{col: db.Collection(bookingsCollection)},
		Reviews:    &mongoReviewStore{col: db.Collection(reviewsCollection)},
		Settings:   &mongoSettingStore{col: db.Collection(settingsCollection)},
	}
}

// EnsureIndexes creates the indexes the queries rely on: a unique index on
// users.email (closes the duplicate-registration race) and the search
// indexes on properties.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(propertiesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "location.city", Value: 1}}},
	})
	return err
}

// newestFirst sorts by creation time, descending.
func newestFirst(page Page) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))
}
