package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

// ProductTransactionService manages line items directly. A standalone create
// does NOT touch product stock or the parent transaction's total — atomic
// postings go through DebtTransactionService.Create instead.
type ProductTransactionService interface {
	Create(ctx context.Context, req dto.CreateProductTransactionRequest) (*dto.ProductTransactionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductTransactionResponse, error)
	List(ctx context.Context) ([]dto.ProductTransactionResponse, error)
	Search(ctx context.Context, filter dto.ProductTransactionFilter) ([]dto.ProductTransactionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductTransactionRequest) (*dto.ProductTransactionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productTransactionService struct {
	repo     repository.ProductTransactionRepository
	debtRepo repository.DebtTransactionRepository
}

func NewProductTransactionService(
	repo repository.ProductTransactionRepository,
	debtRepo repository.DebtTransactionRepository,
) ProductTransactionService {
	return &productTransactionService{repo: repo, debtRepo: debtRepo}
}

func (s *productTransactionService) Create(ctx context.Context, req dto.CreateProductTransactionRequest) (*dto.ProductTransactionResponse, error) {
	debtID, err := uuid.Parse(req.DebtTransactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed debt_transaction_id", ErrInvalidInput)
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed product_id", ErrInvalidInput)
	}
	if _, err := s.debtRepo.FindByID(ctx, debtID); err != nil {
		return nil, ErrNotFound
	}

	pt := &model.ProductTransaction{
		DebtTransactionID: debtID,
		ProductID:         productID,
		Quantity:          req.Quantity,
		PriceAtSale:       req.PriceAtSale,
	}
	if err := s.repo.Create(ctx, pt); err != nil {
		return nil, err
	}
	resp := productTransactionToResponse(pt)
	return &resp, nil
}

func (s *productTransactionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductTransactionResponse, error) {
	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := productTransactionToResponse(pt)
	return &resp, nil
}

func (s *productTransactionService) List(ctx context.Context) ([]dto.ProductTransactionResponse, error) {
	pts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return productTransactionsToResponses(pts), nil
}

func (s *productTransactionService) Search(ctx context.Context, filter dto.ProductTransactionFilter) ([]dto.ProductTransactionResponse, error) {
	pts, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return productTransactionsToResponses(pts), nil
}

func (s *productTransactionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductTransactionRequest) (*dto.ProductTransactionResponse, error) {
	pt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.DebtTransactionID != nil {
		did, err := uuid.Parse(*req.DebtTransactionID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed debt_transaction_id", ErrInvalidInput)
		}
		pt.DebtTransactionID = did
	}
	if req.ProductID != nil {
		pid, err := uuid.Parse(*req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed product_id", ErrInvalidInput)
		}
		pt.ProductID = pid
	}
	if req.Quantity != nil {
		pt.Quantity = *req.Quantity
	}
	if req.PriceAtSale != nil {
		pt.PriceAtSale = *req.PriceAtSale
	}
	if err := s.repo.Update(ctx, pt); err != nil {
		return nil, err
	}
	resp := productTransactionToResponse(pt)
	return &resp, nil
}

func (s *productTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func productTransactionToResponse(pt *model.ProductTransaction) dto.ProductTransactionResponse {
	return dto.ProductTransactionResponse{
		ID:                pt.ID.String(),
		DebtTransactionID: pt.DebtTransactionID.String(),
		ProductID:         pt.ProductID.String(),
		Quantity:          pt.Quantity,
		PriceAtSale:       pt.PriceAtSale,
	}
}

func productTransactionsToResponses(pts []model.ProductTransaction) []dto.ProductTransactionResponse {
	resp := make([]dto.ProductTransactionResponse, len(pts))
	for i := range pts {
		resp[i] = productTransactionToResponse(&pts[i])
	}
	return resp
}
