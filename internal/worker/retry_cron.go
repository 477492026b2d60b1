package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues notifications stuck in
// status='pending' — rows whose delivery job was lost (Redis flush, crash
// between Create and Enqueue). Uses the Circuit Breaker to avoid hammering a
// downed SMTP relay.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
	// Pending rows younger than this are assumed to still have a live job.
	retryMinAge = 2 * time.Minute
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	NotificationRepo repository.NotificationRepository
	Dispatcher       *Dispatcher
	CB               *infra.CircuitBreaker
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries stale pending notifications, and re-enqueues their delivery jobs.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	cutoff := time.Now().Add(-retryMinAge)
	pending, err := cfg.NotificationRepo.ListPendingOlderThan(ctx, cutoff, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query stale notifications")
		return
	}
	if len(pending) == 0 {
		return
	}

	log.Info().Int("count", len(pending)).Msg("retry_cron: re-enqueueing stale notifications")

	for i := range pending {
		n := &pending[i]
		payload := NotificationJobPayload{NotificationID: n.ID.String()}
		if err := cfg.Dispatcher.EnqueueNotification(ctx, payload); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("retry_cron: re-enqueue failed")
			continue
		}
	}
}
