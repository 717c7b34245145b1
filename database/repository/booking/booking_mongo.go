package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"suplient/database"
	"suplient/models"
)

// MongoBookingRepo implements Repository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.DB()
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
	}
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
	}
	return &booking, nil
}

// activeStatuses are the lifecycle states that occupy calendar time.
var activeStatuses = []string{models.StatusScheduled, models.StatusInProgress}

// ListForCoachAroundDate fetches the coach's active bookings within one UTC day
// of the given date. Session dates are ISO strings, so range filters compare
// lexicographically.
func (repo *MongoBookingRepo) ListForCoachAroundDate(ctx context.Context, coachID, utcDate string) ([]models.Booking, error) {
	day, err := time.Parse(models.DateLayout, utcDate)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", utcDate, err)
	}
	from := day.AddDate(0, 0, -1).Format(models.DateLayout)
	to := day.AddDate(0, 0, 1).Format(models.DateLayout)

	filter := bson.M{
		"coach_id":     coachID,
		"session_date": bson.M{"$gte": from, "$lte": to},
		"status":       bson.M{"$in": activeStatuses},
	}
	return repo.findBookings(ctx, filter)
}

// ListForCoachRange fetches the coach's bookings in the inclusive UTC date range.
func (repo *MongoBookingRepo) ListForCoachRange(ctx context.Context, coachID, fromDate, toDate string) ([]models.Booking, error) {
	filter := bson.M{
		"coach_id":     coachID,
		"session_date": bson.M{"$gte": fromDate, "$lte": toDate},
	}
	return repo.findBookings(ctx, filter)
}

func (repo *MongoBookingRepo) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
