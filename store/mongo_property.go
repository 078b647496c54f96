package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestatehub/backend/models"
)

type mongoPropertyStore struct {
	col *mongo.Collection
}

func (s *mongoPropertyStore) Insert(ctx context.Context, property *models.Property) error {
	property.ID = primitive.NewObjectID()
	_, err := s.col.InsertOne(ctx, property)
	return err
}

func (s *mongoPropertyStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var property models.Property
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *mongoPropertyStore) List(ctx context.Context, page Page) ([]models.Property, int64, error) {
	return s.find(ctx, bson.M{}, page)
}

func (s *mongoPropertyStore) Search(ctx context.Context, filter models.PropertyFilter, page Page) ([]models.Property, int64, error) {
	query := bson.M{}

	if filter.Keyword != "" {
		keyword := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": keyword}},
			bson.M{"description": bson.M{"$regex": keyword}},
		}
	}
	if filter.PropertyType != "" {
		query["propertyType"] = bson.M{"$regex": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(filter.PropertyType) + "$",
			Options: "i",
		}}
	}
	if filter.City != "" {
		query["location.city"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.City),
			Options: "i",
		}}
	}
	if filter.State != "" {
		query["location.state"] = bson.M{"$regex": primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.State),
			Options: "i",
		}}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	return s.find(ctx, query, page)
}

func (s *mongoPropertyStore) Update(ctx context.Context, id primitive.ObjectID, update models.PropertyUpdate) (*models.Property, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.PropertyType != nil {
		set["propertyType"] = *update.PropertyType
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Images != nil {
		set["images"] = *update.Images
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *mongoPropertyStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoPropertyStore) DeleteAll(ctx context.Context) error {
	_, err := s.col.DeleteMany(ctx, bson.M{})
	return err
}

func (s *mongoPropertyStore) find(ctx context.Context, query bson.M, page Page) ([]models.Property, int64, error) {
	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := s.col.Find(ctx, query, newestFirst(page))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}
