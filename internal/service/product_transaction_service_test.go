package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

type stubProductTxRepo struct {
	rows map[uuid.UUID]*model.ProductTransaction
}

func newStubProductTxRepo() *stubProductTxRepo {
	return &stubProductTxRepo{rows: make(map[uuid.UUID]*model.ProductTransaction)}
}

func (r *stubProductTxRepo) Create(_ context.Context, pt *model.ProductTransaction) error {
	if pt.ID == uuid.Nil {
		pt.ID = uuid.New()
	}
	r.rows[pt.ID] = pt
	return nil
}

func (r *stubProductTxRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductTransaction, error) {
	pt, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pt, nil
}

func (r *stubProductTxRepo) List(_ context.Context) ([]model.ProductTransaction, error) {
	out := make([]model.ProductTransaction, 0, len(r.rows))
	for _, pt := range r.rows {
		out = append(out, *pt)
	}
	return out, nil
}

func (r *stubProductTxRepo) Search(_ context.Context, filter dto.ProductTransactionFilter) ([]model.ProductTransaction, error) {
	var out []model.ProductTransaction
	for _, pt := range r.rows {
		if filter.ProductID != "" && pt.ProductID.String() != filter.ProductID {
			continue
		}
		if filter.DebtTransactionID != "" && pt.DebtTransactionID.String() != filter.DebtTransactionID {
			continue
		}
		out = append(out, *pt)
	}
	return out, nil
}

func (r *stubProductTxRepo) Update(_ context.Context, pt *model.ProductTransaction) error {
	r.rows[pt.ID] = pt
	return nil
}

func (r *stubProductTxRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

var _ repository.ProductTransactionRepository = (*stubProductTxRepo)(nil)

func seedParentDebt(t *testing.T, debtRepo *stubDebtRepo, total string) *model.DebtTransaction {
	t.Helper()
	parent := &model.DebtTransaction{
		CustomerID:  uuid.New(),
		ShopID:      uuid.New(),
		UserID:      uuid.New(),
		Type:        model.DebtTypeCredit,
		TotalAmount: decimal.RequireFromString(total),
		Status:      "unpaid",
	}
	require.NoError(t, debtRepo.Create(context.Background(), nil, parent))
	return parent
}

// A standalone line-item create is a bare record: the parent transaction's
// total stays what the ledger says, and no stock moves — only the atomic
// posting path has side effects.
func TestProductTransactionCreate_NoSideEffectsOnParent(t *testing.T) {
	repo := newStubProductTxRepo()
	debtRepo := newStubDebtRepo()
	svc := NewProductTransactionService(repo, debtRepo)

	parent := seedParentDebt(t, debtRepo, "100.00")
	productID := uuid.New()

	resp, err := svc.Create(context.Background(), dto.CreateProductTransactionRequest{
		DebtTransactionID: parent.ID.String(),
		ProductID:         productID.String(),
		Quantity:          3,
		PriceAtSale:       decimal.RequireFromString("4.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, parent.ID.String(), resp.DebtTransactionID)
	assert.Equal(t, 3, resp.Quantity)
	assert.True(t, resp.PriceAtSale.Equal(decimal.RequireFromString("4.00")))

	// parent total untouched: 100.00, not 100.00 + 3×4.00
	stored, err := debtRepo.FindByID(context.Background(), parent.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("100.00")),
		"parent total changed to %s", stored.TotalAmount)
	assert.Empty(t, stored.Items)

	// exactly one row written, into the line-item store only
	assert.Len(t, repo.rows, 1)
}

func TestProductTransactionCreate_UnknownParent(t *testing.T) {
	svc := NewProductTransactionService(newStubProductTxRepo(), newStubDebtRepo())

	_, err := svc.Create(context.Background(), dto.CreateProductTransactionRequest{
		DebtTransactionID: uuid.NewString(),
		ProductID:         uuid.NewString(),
		Quantity:          1,
		PriceAtSale:       decimal.RequireFromString("1.00"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductTransactionUpdate_PartialMergesOnlyGivenFields(t *testing.T) {
	repo := newStubProductTxRepo()
	debtRepo := newStubDebtRepo()
	svc := NewProductTransactionService(repo, debtRepo)

	parent := seedParentDebt(t, debtRepo, "50.00")
	created, err := svc.Create(context.Background(), dto.CreateProductTransactionRequest{
		DebtTransactionID: parent.ID.String(),
		ProductID:         uuid.NewString(),
		Quantity:          2,
		PriceAtSale:       decimal.RequireFromString("5.50"),
	})
	require.NoError(t, err)

	qty := 4
	updated, err := svc.Update(context.Background(), uuid.MustParse(created.ID),
		dto.UpdateProductTransactionRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, created.ProductID, updated.ProductID)
	assert.True(t, updated.PriceAtSale.Equal(decimal.RequireFromString("5.50")))
}
