package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/realestatehub/backend/models"
)

type mongoSettingStore struct {
	col *mongo.Collection
}

// The settings collection holds at most one document, so every operation
// works on FindOne / DeleteMany without an id filter.

func (s *mongoSettingStore) Get(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := s.col.FindOne(ctx, bson.M{}).Decode(&setting)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *mongoSettingStore) Save(ctx context.Context, setting *models.Setting) error {
	if setting.ID.IsZero() {
		setting.ID = primitive.NewObjectID()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": setting.ID}, setting, opts)
	return err
}

func (s *mongoSettingStore) Delete(ctx context.Context) error {
	_, err := s.col.DeleteMany(ctx, bson.M{})
	return err
}
