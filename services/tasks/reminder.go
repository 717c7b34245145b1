package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"suplient/models"
)

const TypeSessionReminder = "session:reminder"

// NewSessionReminderTask builds the asynq task that fires a session reminder
// at the given instant.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}
	return task, opts, nil
}
