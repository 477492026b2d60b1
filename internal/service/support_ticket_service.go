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

type SupportTicketService interface {
	Create(ctx context.Context, req dto.CreateSupportTicketRequest) (*dto.SupportTicketResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error)
	List(ctx context.Context) ([]dto.SupportTicketResponse, error)
	Search(ctx context.Context, filter dto.SupportTicketFilter) ([]dto.SupportTicketResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupportTicketRequest) (*dto.SupportTicketResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supportTicketService struct {
	repo repository.SupportTicketRepository
}

func NewSupportTicketService(repo repository.SupportTicketRepository) SupportTicketService {
	return &supportTicketService{repo: repo}
}

func (s *supportTicketService) Create(ctx context.Context, req dto.CreateSupportTicketRequest) (*dto.SupportTicketResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user_id", ErrInvalidInput)
	}
	ticket := &model.SupportTicket{
		UserID:      userID,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      req.Status,
	}
	if ticket.Status == "" {
		ticket.Status = "open"
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	resp := supportTicketToResponse(ticket)
	return &resp, nil
}

func (s *supportTicketService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupportTicketResponse, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := supportTicketToResponse(ticket)
	return &resp, nil
}

func (s *supportTicketService) List(ctx context.Context) ([]dto.SupportTicketResponse, error) {
	tickets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return supportTicketsToResponses(tickets), nil
}

func (s *supportTicketService) Search(ctx context.Context, filter dto.SupportTicketFilter) ([]dto.SupportTicketResponse, error) {
	tickets, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return supportTicketsToResponses(tickets), nil
}

func (s *supportTicketService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupportTicketRequest) (*dto.SupportTicketResponse, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Subject != nil {
		ticket.Subject = *req.Subject
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if err := s.repo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	resp := supportTicketToResponse(ticket)
	return &resp, nil
}

func (s *supportTicketService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func supportTicketToResponse(t *model.SupportTicket) dto.SupportTicketResponse {
	return dto.SupportTicketResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Subject:     t.Subject,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func supportTicketsToResponses(tickets []model.SupportTicket) []dto.SupportTicketResponse {
	resp := make([]dto.SupportTicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = supportTicketToResponse(&tickets[i])
	}
	return resp
}
