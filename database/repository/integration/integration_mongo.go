package integrationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"suplient/database"
	"suplient/models"
)

// ErrNotConnected is returned when a coach has no active integration for the
// requested platform. Callers treat this as "no connection", not a failure.
var ErrNotConnected = errors.New("integration not connected")

// Repository provides access to coach integration records. The records are
// written by the OAuth flows elsewhere in the application; the engine only
// reads them.
type Repository interface {
	// GetActive returns the coach's active integration for a platform, or
	// ErrNotConnected when none exists or the record is inactive.
	GetActive(ctx context.Context, coachID, platform string) (*models.Integration, error)
	// Deactivate marks an integration unusable, e.g. after a token rejection.
	Deactivate(ctx context.Context, coachID, platform string) error
}

// MongoIntegrationRepo implements Repository using MongoDB.
type MongoIntegrationRepo struct {
	integrationColl *mongo.Collection
}

// NewMongoIntegrationRepo constructs a new instance of MongoIntegrationRepo.
func NewMongoIntegrationRepo() *MongoIntegrationRepo {
	db := database.DB()
	return &MongoIntegrationRepo{
		integrationColl: db.Collection("integrations"),
	}
}

func (repo *MongoIntegrationRepo) GetActive(ctx context.Context, coachID, platform string) (*models.Integration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var integ models.Integration
	filter := bson.M{"coach_id": coachID, "platform": platform}
	err := repo.integrationColl.FindOne(ctx, filter).Decode(&integ)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching %s integration for coach %s: %w", platform, coachID, err)
	}
	if !integ.Connected() {
		return nil, ErrNotConnected
	}
	return &integ, nil
}

func (repo *MongoIntegrationRepo) Deactivate(ctx context.Context, coachID, platform string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"coach_id": coachID, "platform": platform}
	update := bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}}
	if _, err := repo.integrationColl.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("error deactivating %s integration for coach %s: %w", platform, coachID, err)
	}
	return nil
}
