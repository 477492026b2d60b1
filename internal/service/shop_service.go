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

type ShopService interface {
	Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error)
	List(ctx context.Context) ([]dto.ShopResponse, error)
	Search(ctx context.Context, filter dto.ShopFilter) ([]dto.ShopResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type shopService struct {
	repo repository.ShopRepository
}

func NewShopService(repo repository.ShopRepository) ShopService {
	return &shopService{repo: repo}
}

func (s *shopService) Create(ctx context.Context, req dto.CreateShopRequest) (*dto.ShopResponse, error) {
	shop := &model.Shop{
		Name:    req.Name,
		Address: req.Address,
	}
	if req.OwnerID != nil {
		oid, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed owner_id", ErrInvalidInput)
		}
		shop.OwnerID = &oid
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *shopService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *shopService) List(ctx context.Context) ([]dto.ShopResponse, error) {
	shops, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return shopsToResponses(shops), nil
}

func (s *shopService) Search(ctx context.Context, filter dto.ShopFilter) ([]dto.ShopResponse, error) {
	shops, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shopsToResponses(shops), nil
}

func (s *shopService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.OwnerID != nil {
		oid, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed owner_id", ErrInvalidInput)
		}
		shop.OwnerID = &oid
	}
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	resp := shopToResponse(shop)
	return &resp, nil
}

func (s *shopService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func shopToResponse(s *model.Shop) dto.ShopResponse {
	var ownerID *string
	if s.OwnerID != nil {
		o := s.OwnerID.String()
		ownerID = &o
	}
	return dto.ShopResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Address:   s.Address,
		OwnerID:   ownerID,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
}

func shopsToResponses(shops []model.Shop) []dto.ShopResponse {
	resp := make([]dto.ShopResponse, len(shops))
	for i := range shops {
		resp[i] = shopToResponse(&shops[i])
	}
	return resp
}
