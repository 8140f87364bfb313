package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homeserve/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ivrSettingsID = "ivr"

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a SettingsRepository over the ivr_settings collection.
func NewMongoSettingsRepo(client *mongo.Client, dbName string) SettingsRepository {
	return &MongoSettingsRepo{coll: client.Database(dbName).Collection("ivr_settings")}
}

func (r *MongoSettingsRepo) GetIVRSettings(ctx context.Context) (*models.IVRSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.IVRSettings
	err := r.coll.FindOne(ctx, bson.M{"_id": ivrSettingsID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IVR settings: %w", err)
	}
	return &s, nil
}

func (r *MongoSettingsRepo) SaveIVRSettings(ctx context.Context, settings models.IVRSettings) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": ivrSettingsID}, settings, opts); err != nil {
		return fmt.Errorf("failed to save IVR settings: %w", err)
	}
	return nil
}
