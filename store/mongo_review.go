package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestatehub/backend/models"
)

type mongoReviewStore struct {
	col *mongo.Collection
}

func (s *mongoReviewStore) Insert(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	_, err := s.col.InsertOne(ctx, review)
	return err
}

func (s *mongoReviewStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *mongoReviewStore) Exists(ctx context.Context, property, user primitive.ObjectID) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"property": property, "user": user})
	return count > 0, err
}

func (s *mongoReviewStore) List(ctx context.Context, property *primitive.ObjectID, page Page) ([]models.Review, int64, error) {
	query := bson.M{}
	if property != nil {
		query["property"] = *property
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

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (s *mongoReviewStore) Update(ctx context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	set := bson.M{}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}
	if update.Comment != nil {
		set["comment"] = *update.Comment
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *mongoReviewStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
