package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"artisly/config"
	bookingRepo "artisly/database/repository/booking"
	"artisly/models"
	"artisly/services/notification"

	"github.com/hibiken/asynq"
)

const TypePaymentReminder = "reminder:payment"

type paymentReminderPayload struct {
	BookingID string `json:"booking_id"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderClient enqueues deferred payment reminders. It satisfies the
// booking service's scheduler dependency.
type ReminderClient struct {
	client *asynq.Client
}

func NewReminderClient() *ReminderClient {
	return &ReminderClient{client: asynq.NewClient(redisOpts())}
}

func (c *ReminderClient) SchedulePaymentReminder(bookingID string, delay time.Duration) error {
	payload, err := json.Marshal(paymentReminderPayload{BookingID: bookingID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypePaymentReminder, payload)
	_, err = c.client.Enqueue(task, asynq.ProcessIn(delay))
	return err
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(bookings bookingRepo.BookingRepository, notifier notification.Dispatcher) {
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
	mux.HandleFunc(TypePaymentReminder, handlePaymentReminder(bookings, notifier))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handlePaymentReminder nudges the customer of a booking that was accepted
// but never paid. The booking is re-read at fire time; the task is a silent
// no-op once payment arrived or the booking moved on.
func handlePaymentReminder(bookings bookingRepo.BookingRepository, notifier notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p paymentReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}

		b, err := bookings.GetByID(p.BookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return nil
		}
		if b.Status != models.BookingStatusAccepted || b.PaymentStatus != models.BookingPaymentPending {
			return nil
		}

		if err := notifier.Notify(ctx, b.CustomerID, models.RecipientCustomer,
			models.EventPaymentReminder,
			"Complete your booking",
			"Your booking was accepted. Pay now to confirm your slot.",
			b.ID, "booking"); err != nil {
			log.Printf("[ReminderWorker] failed to send payment reminder for booking %s: %v", b.ID, err)
			return err
		}
		return nil
	}
}
