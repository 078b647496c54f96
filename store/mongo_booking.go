package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestatehub/backend/models"
)

type mongoBookingStore struct {
	col *mongo.Collection
}

func (s *mongoBookingStore) Insert(ctx context.Context, booking *models.BookingInquiry) error {
	booking.ID = primitive.NewObjectID()
	_, err := s.col.InsertOne(ctx, booking)
	return err
}

func (s *mongoBookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BookingInquiry, error) {
	var booking models.BookingInquiry
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *mongoBookingStore) HasPending(ctx context.Context, property, user primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"property": property,
		"user":     user,
		"status":   models.BookingStatusPending,
	}
	count, err := s.col.CountDocuments(ctx, filter)
	return count > 0, err
}

func (s *mongoBookingStore) List(ctx context.Context, filter models.BookingFilter, page Page) ([]models.BookingInquiry, int64, error) {
	query := bson.M{}
	if filter.User != nil {
		query["user"] = *filter.User
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, query, newestFirst(page))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingInquiry{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (s *mongoBookingStore) ListByUser(ctx context.Context, user primitive.ObjectID) ([]models.BookingInquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"user": user}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.BookingInquiry{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *mongoBookingStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.BookingInquiry, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.BookingInquiry
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}}, opts).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
