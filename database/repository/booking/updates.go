package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"suplient/models"
)

// AttachMeeting records the meeting link and platform produced by orchestration.
func (repo *MongoBookingRepo) AttachMeeting(ctx context.Context, bookingID, platform, joinLink string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{
		"$set": bson.M{
			"meeting_platform": platform,
			"meeting_link":     joinLink,
			"updated_at":       time.Now(),
		},
	}
	res, err := repo.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error attaching meeting to booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

// UpdateStatus moves a booking through its lifecycle, enforcing valid transitions.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, status string) error {
	booking, err := repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !models.ValidStatusTransition(booking.Status, status) {
		return fmt.Errorf("invalid status transition %s -> %s", booking.Status, status)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID, "status": booking.Status}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := repo.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s changed concurrently, status not updated", bookingID)
	}
	return nil
}
