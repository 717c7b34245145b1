package rosterRepo

import (
	"context"

	"suplient/models"
)

// Repository exposes the read-only roster views the scheduling engine needs:
// conflict labels, meeting attendees, and notification recipients. Roster
// management itself lives in another part of the application.
type Repository interface {
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetClientByID(ctx context.Context, clientID string) (*models.Client, error)
	GetGroupByID(ctx context.Context, groupID string) (*models.Group, error)
}
