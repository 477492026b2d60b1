package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/worker"
)

type NotificationService interface {
	Create(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error)
	List(ctx context.Context) ([]dto.NotificationResponse, error)
	Search(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateNotificationRequest) (*dto.NotificationResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type notificationService struct {
	repo       repository.NotificationRepository
	dispatcher *worker.Dispatcher
}

func NewNotificationService(repo repository.NotificationRepository, dispatcher *worker.Dispatcher) NotificationService {
	return &notificationService{repo: repo, dispatcher: dispatcher}
}

// Create stores the row as "pending" and hands delivery to the worker pool.
// Enqueue failures are swallowed; the retry cron re-dispatches stale rows.
func (s *notificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user_id", ErrInvalidInput)
	}
	n := &model.Notification{
		UserID:  userID,
		Type:    req.Type,
		Message: req.Message,
		Status:  req.Status,
	}
	if n.Status == "" {
		n.Status = model.NotificationPending
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.dispatcher != nil && n.Status == model.NotificationPending {
		payload := worker.NotificationJobPayload{NotificationID: n.ID.String()}
		if err := s.dispatcher.EnqueueNotification(ctx, payload); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("delivery enqueue failed")
		}
	}

	resp := notificationToResponse(n)
	return &resp, nil
}

func (s *notificationService) GetByID(ctx context.Context, id uuid.UUID) (*dto.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := notificationToResponse(n)
	return &resp, nil
}

func (s *notificationService) List(ctx context.Context) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return notificationsToResponses(notifications), nil
}

func (s *notificationService) Search(ctx context.Context, filter dto.NotificationFilter) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return notificationsToResponses(notifications), nil
}

func (s *notificationService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateNotificationRequest) (*dto.NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Type != nil {
		n.Type = *req.Type
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.Status != nil {
		n.Status = *req.Status
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	resp := notificationToResponse(n)
	return &resp, nil
}

func (s *notificationService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func notificationToResponse(n *model.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Type:      n.Type,
		Message:   n.Message,
		Status:    n.Status,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func notificationsToResponses(notifications []model.Notification) []dto.NotificationResponse {
	resp := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		resp[i] = notificationToResponse(&notifications[i])
	}
	return resp
}
