package cron

import (
	"encoding/json"
	"fmt"
	"time"

	"pawroute/models"

	"github.com/hibiken/asynq"
)

// ReminderScheduler enqueues walk reminders for future delivery.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler over the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// Schedule enqueues one walk reminder to fire at the given time. Fire
// times already in the past are delivered immediately.
func (s *ReminderScheduler) Schedule(payload models.ReminderPayload, at time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeWalkReminder, data)
	opts := []asynq.Option{asynq.MaxRetry(3)}
	if at.After(time.Now()) {
		opts = append(opts, asynq.ProcessAt(at))
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue walk reminder for booking %s: %w", payload.BookingID, err)
	}
	return nil
}

// Close releases the underlying queue client.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}
