package rosterRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"suplient/database"
	"suplient/models"
)

// MongoRosterRepo implements Repository using MongoDB.
type MongoRosterRepo struct {
	userColl   *mongo.Collection
	clientColl *mongo.Collection
	groupColl  *mongo.Collection
}

// NewMongoRosterRepo constructs a new instance of MongoRosterRepo.
func NewMongoRosterRepo() *MongoRosterRepo {
	db := database.DB()
	return &MongoRosterRepo{
		userColl:   db.Collection("users"),
		clientColl: db.Collection("clients"),
		groupColl:  db.Collection("groups"),
	}
}

func (repo *MongoRosterRepo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := repo.userColl.FindOne(ctx, bson.M{"id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("user %s not found: %w", userID, err)
	}
	return &user, nil
}

func (repo *MongoRosterRepo) GetClientByID(ctx context.Context, clientID string) (*models.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	if err := repo.clientColl.FindOne(ctx, bson.M{"id": clientID}).Decode(&client); err != nil {
		return nil, fmt.Errorf("client %s not found: %w", clientID, err)
	}
	return &client, nil
}

func (repo *MongoRosterRepo) GetGroupByID(ctx context.Context, groupID string) (*models.Group, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var group models.Group
	if err := repo.groupColl.FindOne(ctx, bson.M{"id": groupID}).Decode(&group); err != nil {
		return nil, fmt.Errorf("group %s not found: %w", groupID, err)
	}
	return &group, nil
}
