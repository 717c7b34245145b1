package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"suplient/config"
	bookingRepo "suplient/database/repository/booking"
	"suplient/models"
	"suplient/services/notification"
	"suplient/services/tasks"
	"suplient/utils"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(bookings bookingRepo.Repository, notifSvc notification.Service) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionReminder, handleReminderTask(bookings, notifSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting session reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					log.Fatal("reminder worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(bookings bookingRepo.Repository, notifSvc notification.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		booking, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			logger.Warn("reminder fired for unknown booking", zap.String("bookingID", p.BookingID))
			return nil
		}
		// The session may have moved or been called off since the reminder was
		// enqueued; only live sessions are worth a ping.
		if booking.Status != models.StatusScheduled {
			logger.Debug("skipping reminder for inactive booking",
				zap.String("bookingID", booking.ID), zap.String("status", booking.Status))
			return nil
		}

		report := notifSvc.NotifySessionReminder(ctx, booking)
		logger.Info("session reminder delivered",
			zap.String("bookingID", booking.ID),
			zap.Int("delivered", report.Delivered),
			zap.Int("failed", len(report.Failures)))
		return nil
	}
}

// ReminderScheduler enqueues session reminder tasks against the worker queue.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleSessionReminder enqueues a reminder to fire ahead of the session
// start. Sessions starting inside the lead window get no reminder.
func (s *ReminderScheduler) ScheduleSessionReminder(booking *models.Booking) error {
	start, err := booking.StartUTC()
	if err != nil {
		return err
	}
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}
	fireAt := start.Add(-lead)
	if !fireAt.After(time.Now().UTC()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		FireAt:    fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewSessionReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return err
	}
	return nil
}
