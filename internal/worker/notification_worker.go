package worker

// notification_worker.go
// Processes delivery jobs from QueueNotification. Email goes out through the
// SMTP relay behind the circuit breaker; sms and in-app channels are marked
// delivered once the row is visible to the recipient.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

const maxDeliveryAttempts = 3

// EmailSender is the slice of infra.Mailer the worker needs.
type EmailSender interface {
	Send(to, subject, body string) error
}

// NotificationJobPayload is the job envelope sent to QueueNotification.
type NotificationJobPayload struct {
	NotificationID string `json:"notification_id"`
}

type NotificationWorker struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	mailer           EmailSender
	cb               *infra.CircuitBreaker
	rdb              *redis.Client
}

func NewNotificationWorker(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	mailer EmailSender,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
) *NotificationWorker {
	return &NotificationWorker{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		cb:               cb,
		rdb:              rdb,
	}
}

// Process delivers a single notification:
//  1. Parse NotificationJobPayload from the job envelope
//  2. Fetch the notification row; skip if it already left "pending"
//  3. Deliver per channel (email via SMTP with retries, sms/in-app direct)
//  4. Move the row to "sent" or "failed"; exhausted email jobs go to the DLQ
func (w *NotificationWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload NotificationJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("notification_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.NotificationID)
	if err != nil {
		log.Error().Str("notification_id", payload.NotificationID).Msg("notification_worker: invalid notification_id")
		return
	}

	n, err := w.notificationRepo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("notification_id", payload.NotificationID).Msg("notification_worker: notification not found")
		return
	}
	if n.Status != model.NotificationPending {
		log.Debug().Str("notification_id", payload.NotificationID).Str("status", n.Status).Msg("notification_worker: already delivered, skipping")
		return
	}

	switch n.Type {
	case model.NotificationEmail:
		w.deliverEmail(ctx, n, raw)
	case model.NotificationSMS, model.NotificationInApp:
		// No external gateway wired; the row itself is the delivery surface.
		if err := w.notificationRepo.UpdateStatus(ctx, n.ID, model.NotificationSent); err != nil {
			log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("notification_worker: status update failed")
		}
	default:
		log.Warn().Str("type", n.Type).Str("notification_id", n.ID.String()).Msg("notification_worker: unknown channel")
		_ = w.notificationRepo.UpdateStatus(ctx, n.ID, model.NotificationFailed)
	}
}

func (w *NotificationWorker) deliverEmail(ctx context.Context, n *model.Notification, raw json.RawMessage) {
	user, err := w.userRepo.FindByID(ctx, n.UserID)
	if err != nil {
		log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("notification_worker: recipient not found")
		_ = w.notificationRepo.UpdateStatus(ctx, n.ID, model.NotificationFailed)
		return
	}

	sendErr := withRetry(ctx, maxDeliveryAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			err := w.mailer.Send(user.Email, "Market Debt Management notification", n.Message)
			if err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Str("notification_id", n.ID.String()).
					Msg("notification_worker: send attempt failed, retrying")
			}
			return err
		})
	})

	if sendErr != nil {
		log.Error().Err(sendErr).Str("notification_id", n.ID.String()).Msg("notification_worker: delivery failed after all retries")
		_ = w.notificationRepo.UpdateStatus(ctx, n.ID, model.NotificationFailed)
		SendToDLQ(ctx, w.rdb, QueueNotification, "notification", raw, sendErr.Error(), maxDeliveryAttempts)
		return
	}

	if err := w.notificationRepo.UpdateStatus(ctx, n.ID, model.NotificationSent); err != nil {
		log.Error().Err(err).Str("notification_id", n.ID.String()).Msg("notification_worker: status update failed")
		return
	}
	log.Info().Str("notification_id", n.ID.String()).Str("to", user.Email).Msg("notification_worker: email delivered")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
