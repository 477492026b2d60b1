package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

type AuditLogService interface {
	Create(ctx context.Context, req dto.CreateAuditLogRequest) (*dto.AuditLogResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AuditLogResponse, error)
	List(ctx context.Context) ([]dto.AuditLogResponse, error)
	Search(ctx context.Context, filter dto.AuditLogFilter) ([]dto.AuditLogResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateAuditLogRequest) (*dto.AuditLogResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type auditLogService struct {
	repo repository.AuditLogRepository
}

func NewAuditLogService(repo repository.AuditLogRepository) AuditLogService {
	return &auditLogService{repo: repo}
}

func (s *auditLogService) Create(ctx context.Context, req dto.CreateAuditLogRequest) (*dto.AuditLogResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user_id", ErrInvalidInput)
	}
	l := &model.AuditLog{
		UserID:     &userID,
		Action:     req.Action,
		EntityType: req.EntityType,
		EntityID:   req.EntityID,
		Details:    req.Details,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	resp := auditLogToResponse(l)
	return &resp, nil
}

func (s *auditLogService) GetByID(ctx context.Context, id uuid.UUID) (*dto.AuditLogResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := auditLogToResponse(l)
	return &resp, nil
}

func (s *auditLogService) List(ctx context.Context) ([]dto.AuditLogResponse, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return auditLogsToResponses(logs), nil
}

func (s *auditLogService) Search(ctx context.Context, filter dto.AuditLogFilter) ([]dto.AuditLogResponse, error) {
	logs, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return auditLogsToResponses(logs), nil
}

func (s *auditLogService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAuditLogRequest) (*dto.AuditLogResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Action != nil {
		l.Action = *req.Action
	}
	if req.EntityType != nil {
		l.EntityType = *req.EntityType
	}
	if req.EntityID != nil {
		l.EntityID = *req.EntityID
	}
	if req.Details != nil {
		l.Details = *req.Details
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	resp := auditLogToResponse(l)
	return &resp, nil
}

func (s *auditLogService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func auditLogToResponse(l *model.AuditLog) dto.AuditLogResponse {
	var userID *string
	if l.UserID != nil {
		u := l.UserID.String()
		userID = &u
	}
	return dto.AuditLogResponse{
		ID:         l.ID.String(),
		UserID:     userID,
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
}

func auditLogsToResponses(logs []model.AuditLog) []dto.AuditLogResponse {
	resp := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		resp[i] = auditLogToResponse(&logs[i])
	}
	return resp
}
