package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"suplient/database"
	"suplient/models"
)

// Repository persists in-app notification records.
type Repository interface {
	Create(ctx context.Context, n *models.Notification) error
}

// MongoNotificationRepo implements Repository using MongoDB.
type MongoNotificationRepo struct {
	notificationColl *mongo.Collection
}

// NewMongoNotificationRepo constructs a new instance of MongoNotificationRepo.
func NewMongoNotificationRepo() *MongoNotificationRepo {
	db := database.DB()
	return &MongoNotificationRepo{
		notificationColl: db.Collection("notifications"),
	}
}

func (repo *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.notificationColl.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}
