package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/worker"
)

var (
	ErrTotalRequired  = errors.New("total_amount is required when no items are given")
	ErrItemsOnPayment = errors.New("items are only valid on credit transactions")
)

type DebtTransactionService interface {
	Create(ctx context.Context, actingUserID uuid.UUID, req dto.CreateDebtTransactionRequest) (*dto.DebtTransactionResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DebtTransactionResponse, error)
	List(ctx context.Context) ([]dto.DebtTransactionResponse, error)
	Search(ctx context.Context, filter dto.DebtTransactionFilter) ([]dto.DebtTransactionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateDebtTransactionRequest) (*dto.DebtTransactionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Statement renders the customer's full ledger history to a PDF and
	// returns the file path.
	Statement(ctx context.Context, customerID uuid.UUID) (string, error)
}

// StatementEnqueuer queues background statement refreshes after ledger
// writes. Satisfied by *worker.Dispatcher; nil disables the refresh.
type StatementEnqueuer interface {
	EnqueueStatement(ctx context.Context, payload interface{}) error
}

type debtTransactionService struct {
	repo         repository.DebtTransactionRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditLogRepository
	statements   StatementEnqueuer
	storagePath  string
}

func NewDebtTransactionService(
	repo repository.DebtTransactionRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditLogRepository,
	statements StatementEnqueuer,
	storagePath string,
) DebtTransactionService {
	return &debtTransactionService{
		repo:         repo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		statements:   statements,
		storagePath:  storagePath,
	}
}

// refreshStatement re-renders the customer's PDF off the request path so the
// copy on disk tracks the ledger. Best-effort: the download endpoint renders
// fresh anyway.
func (s *debtTransactionService) refreshStatement(ctx context.Context, customerID uuid.UUID) {
	if s.statements == nil {
		return
	}
	payload := worker.StatementJobPayload{CustomerID: customerID.String()}
	if err := s.statements.EnqueueStatement(ctx, payload); err != nil {
		log.Warn().Err(err).Str("customer_id", customerID.String()).Msg("statement refresh enqueue failed")
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create records a ledger entry. Two shapes are accepted:
//
//   - Bare entry: no items, total_amount taken from the request as-is.
//   - Atomic posting: credit with line items. The total is derived from the
//     items' quantity × snapshotted product price, stock is decremented under
//     a non-negative guard, and an audit row is written — all in one
//     transaction, so a stock conflict rolls back the whole posting.
func (s *debtTransactionService) Create(ctx context.Context, actingUserID uuid.UUID, req dto.CreateDebtTransactionRequest) (*dto.DebtTransactionResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed customer_id", ErrInvalidInput)
	}
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed shop_id", ErrInvalidInput)
	}
	userID := actingUserID
	if req.UserID != nil {
		userID, err = uuid.Parse(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed user_id", ErrInvalidInput)
		}
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, ErrNotFound
	}

	status := req.Status
	if status == "" {
		status = "unpaid"
	}

	if len(req.Items) == 0 {
		if req.TotalAmount == nil {
			return nil, ErrTotalRequired
		}
		t := model.DebtTransaction{
			CustomerID:  customerID,
			ShopID:      shopID,
			UserID:      userID,
			Type:        req.Type,
			TotalAmount: *req.TotalAmount,
			Status:      status,
		}
		if err := s.repo.Create(ctx, nil, &t); err != nil {
			return nil, err
		}
		s.refreshStatement(ctx, customerID)
		return transactionToResponse(&t), nil
	}

	if req.Type != model.DebtTypeCredit {
		return nil, ErrItemsOnPayment
	}

	// Resolve products and snapshot prices outside the transaction.
	type resolvedItem struct {
		productID uuid.UUID
		name      string
		price     decimal.Decimal
		quantity  int
	}
	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed product_id", ErrInvalidInput)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s not found", ErrInvalidInput, item.ProductID)
		}
		total = total.Add(p.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			price:     p.PricePerUnit,
			quantity:  item.Quantity,
		})
	}

	var t model.DebtTransaction
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		t = model.DebtTransaction{
			CustomerID:  customerID,
			ShopID:      shopID,
			UserID:      userID,
			Type:        model.DebtTypeCredit,
			TotalAmount: total,
			Status:      status,
		}
		for _, r := range resolved {
			t.Items = append(t.Items, model.ProductTransaction{
				ProductID:   r.productID,
				Quantity:    r.quantity,
				PriceAtSale: r.price,
			})
		}
		if err := s.repo.Create(ctx, tx, &t); err != nil {
			return err
		}

		for _, r := range resolved {
			if err := s.productRepo.UpdateStockTx(tx, r.productID, -r.quantity); err != nil {
				return fmt.Errorf("stock decrement for %s: %w", r.name, err)
			}
		}

		audit := model.AuditLog{
			UserID:     &userID,
			Action:     "debt_transaction.posted",
			EntityType: "debt_transactions",
			EntityID:   t.ID.String(),
			Details:    fmt.Sprintf("credit of %s posted for customer %s with %d items", total.StringFixed(2), customerID, len(resolved)),
		}
		return s.auditRepo.CreateTx(tx, &audit)
	})
	if txErr != nil {
		return nil, txErr
	}
	s.refreshStatement(ctx, customerID)

	resp := transactionToResponse(&t)
	for i, r := range resolved {
		resp.Items[i].Product = r.name
	}
	return resp, nil
}

func (s *debtTransactionService) GetByID(ctx context.Context, id uuid.UUID) (*dto.DebtTransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return transactionToResponse(t), nil
}

func (s *debtTransactionService) List(ctx context.Context) ([]dto.DebtTransactionResponse, error) {
	txs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return transactionsToResponses(txs), nil
}

func (s *debtTransactionService) Search(ctx context.Context, filter dto.DebtTransactionFilter) ([]dto.DebtTransactionResponse, error) {
	txs, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return transactionsToResponses(txs), nil
}

// Update touches the scalar ledger fields only; line items are immutable once
// posted.
func (s *debtTransactionService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDebtTransactionRequest) (*dto.DebtTransactionResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.TotalAmount != nil {
		t.TotalAmount = *req.TotalAmount
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return transactionToResponse(t), nil
}

func (s *debtTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *debtTransactionService) Statement(ctx context.Context, customerID uuid.UUID) (string, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return "", ErrNotFound
	}
	transactions, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	return infra.GenerateStatementPDF(customer, transactions, s.storagePath)
}

func transactionToResponse(t *model.DebtTransaction) *dto.DebtTransactionResponse {
	items := make([]dto.DebtItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		items = append(items, dto.DebtItemResponse{
			ID:          item.ID.String(),
			ProductID:   item.ProductID.String(),
			Product:     name,
			Quantity:    item.Quantity,
			PriceAtSale: item.PriceAtSale,
		})
	}
	return &dto.DebtTransactionResponse{
		ID:          t.ID.String(),
		CustomerID:  t.CustomerID.String(),
		ShopID:      t.ShopID.String(),
		UserID:      t.UserID.String(),
		Type:        t.Type,
		TotalAmount: t.TotalAmount,
		Status:      t.Status,
		Items:       items,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func transactionsToResponses(txs []model.DebtTransaction) []dto.DebtTransactionResponse {
	resp := make([]dto.DebtTransactionResponse, len(txs))
	for i := range txs {
		resp[i] = *transactionToResponse(&txs[i])
	}
	return resp
}
