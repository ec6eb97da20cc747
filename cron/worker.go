package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"pawroute/config"
	"pawroute/models"
	"pawroute/services/notification"

	"github.com/hibiken/asynq"
)

const TypeWalkReminder = "walk:reminder"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(notifSvc notification.NotificationService) {
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
	mux.HandleFunc(TypeWalkReminder, handleReminderTask(notifSvc))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"date":      p.Date,
		}

		// Remind both parties; a failed push to one side does not block
		// the other.
		if err := notifSvc.SendClientPush(ctx, p.ClientID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] client push failed for booking %s: %v", p.BookingID, err)
		}
		if err := notifSvc.SendWalkerPush(ctx, p.WalkerID, p.Title, p.Body, data); err != nil {
			log.Printf("[ReminderHandler] walker push failed for booking %s: %v", p.BookingID, err)
		}
		return nil
	}
}
