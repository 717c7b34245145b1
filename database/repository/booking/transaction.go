package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"suplient/models"
)

// InsertIfFree re-reads the coach's live bookings and inserts the new one as a
// single transaction. Two concurrent commits for overlapping slots therefore
// cannot both succeed: the loser observes the winner's insert and receives a
// conflict report. The commit runs on a detached context so an abandoned
// caller cannot cancel it mid-flight.
func (repo *MongoBookingRepo) InsertIfFree(_ context.Context, booking *models.Booking, check ConflictCheck) (*models.ConflictReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	day, err := time.Parse(models.DateLayout, booking.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid session date %q: %w", booking.SessionDate, err)
	}
	filter := bson.M{
		"coach_id": booking.CoachID,
		"session_date": bson.M{
			"$gte": day.AddDate(0, 0, -1).Format(models.DateLayout),
			"$lte": day.AddDate(0, 0, 1).Format(models.DateLayout),
		},
		"status": bson.M{"$in": activeStatuses},
	}

	var report *models.ConflictReport
	txnFn := func(sc mongo.SessionContext) error {
		cursor, err := repo.bookingColl.Find(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict re-check query failed: %w", err)
		}
		var existing []models.Booking
		if err := cursor.All(sc, &existing); err != nil {
			return fmt.Errorf("conflict re-check decode failed: %w", err)
		}

		if report = check(existing); report != nil {
			// Not an error: the transaction simply has nothing to write.
			return nil
		}

		if _, err := repo.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return nil, fmt.Errorf("booking transaction failed: %w", err)
	}

	return report, nil
}
