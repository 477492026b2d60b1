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
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/worker"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubDebtRepo struct {
	transactions map[uuid.UUID]*model.DebtTransaction
}

func newStubDebtRepo() *stubDebtRepo {
	return &stubDebtRepo{transactions: make(map[uuid.UUID]*model.DebtTransaction)}
}

func (r *stubDebtRepo) Create(_ context.Context, _ *gorm.DB, t *model.DebtTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	for i := range t.Items {
		if t.Items[i].ID == uuid.Nil {
			t.Items[i].ID = uuid.New()
		}
		t.Items[i].DebtTransactionID = t.ID
	}
	r.transactions[t.ID] = t
	return nil
}

func (r *stubDebtRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DebtTransaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubDebtRepo) List(_ context.Context) ([]model.DebtTransaction, error) {
	out := make([]model.DebtTransaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubDebtRepo) Search(_ context.Context, filter dto.DebtTransactionFilter) ([]model.DebtTransaction, error) {
	var out []model.DebtTransaction
	for _, t := range r.transactions {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubDebtRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]model.DebtTransaction, error) {
	var out []model.DebtTransaction
	for _, t := range r.transactions {
		if t.CustomerID == customerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubDebtRepo) Update(_ context.Context, t *model.DebtTransaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *stubDebtRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.transactions[id]; !ok {
		return false, nil
	}
	delete(r.transactions, id)
	return true, nil
}

func (r *stubDebtRepo) DB() *gorm.DB { return nil }

var _ repository.DebtTransactionRepository = (*stubDebtRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindByBarcode(_ context.Context, barcode string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]model.Product, error) { return nil, nil }

func (r *stubProductRepo) Search(_ context.Context, _ dto.ProductFilter) ([]model.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.products[id]; !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if delta < 0 && p.QuantityInStock < -delta {
		return repository.ErrInsufficientStock
	}
	p.QuantityInStock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]model.Customer, error) { return nil, nil }

func (r *stubCustomerRepo) Search(_ context.Context, _ dto.CustomerFilter) ([]model.Customer, error) {
	return nil, nil
}

func (r *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.customers[id]; !ok {
		return false, nil
	}
	delete(r.customers, id)
	return true, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubAuditRepo struct {
	logs []model.AuditLog
}

func (r *stubAuditRepo) Create(_ context.Context, l *model.AuditLog) error {
	r.logs = append(r.logs, *l)
	return nil
}

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, l *model.AuditLog) error {
	r.logs = append(r.logs, *l)
	return nil
}

func (r *stubAuditRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.AuditLog, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAuditRepo) List(_ context.Context) ([]model.AuditLog, error) { return r.logs, nil }

func (r *stubAuditRepo) Search(_ context.Context, _ dto.AuditLogFilter) ([]model.AuditLog, error) {
	return r.logs, nil
}

func (r *stubAuditRepo) Update(_ context.Context, _ *model.AuditLog) error { return nil }

func (r *stubAuditRepo) Delete(_ context.Context, _ uuid.UUID) (bool, error) { return false, nil }

var _ repository.AuditLogRepository = (*stubAuditRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type stubStatementEnqueuer struct {
	payloads []interface{}
}

func (e *stubStatementEnqueuer) EnqueueStatement(_ context.Context, payload interface{}) error {
	e.payloads = append(e.payloads, payload)
	return nil
}

type debtFixture struct {
	svc          DebtTransactionService
	debtRepo     *stubDebtRepo
	productRepo  *stubProductRepo
	customerRepo *stubCustomerRepo
	auditRepo    *stubAuditRepo
	statements   *stubStatementEnqueuer
	customer     *model.Customer
	shopID       uuid.UUID
	userID       uuid.UUID
}

func newDebtFixture(t *testing.T) *debtFixture {
	t.Helper()
	debtRepo := newStubDebtRepo()
	productRepo := newStubProductRepo()
	customerRepo := newStubCustomerRepo()
	auditRepo := &stubAuditRepo{}
	statements := &stubStatementEnqueuer{}

	shopID := uuid.New()
	customer := &model.Customer{Name: "Debtor", ContactInfo: "555-0101", Status: "active", ShopID: shopID}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	return &debtFixture{
		svc:          NewDebtTransactionService(debtRepo, productRepo, customerRepo, auditRepo, statements, t.TempDir()),
		debtRepo:     debtRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		statements:   statements,
		customer:     customer,
		shopID:       shopID,
		userID:       uuid.New(),
	}
}

func (f *debtFixture) seedProduct(t *testing.T, price string, stock int) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:            "Rice 1kg",
		Brand:           "Acme",
		Category:        "grocery",
		Barcode:         uuid.NewString(),
		PricePerUnit:    decimal.RequireFromString(price),
		QuantityInStock: stock,
	}
	require.NoError(t, f.productRepo.Create(context.Background(), p))
	return p
}

// ── Tests: atomic posting ─────────────────────────────────────────────────────

func TestDebtCreate_PostingDerivesTotalAndDecrementsStock(t *testing.T) {
	f := newDebtFixture(t)
	rice := f.seedProduct(t, "3.50", 10)
	oil := f.seedProduct(t, "8.00", 5)

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "credit",
		Items: []dto.DebtItemRequest{
			{ProductID: rice.ID.String(), Quantity: 2},
			{ProductID: oil.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	// total = 2×3.50 + 1×8.00
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("15.00")),
		"got total %s", resp.TotalAmount)
	assert.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].PriceAtSale.Equal(rice.PricePerUnit))

	assert.Equal(t, 8, rice.QuantityInStock)
	assert.Equal(t, 4, oil.QuantityInStock)

	// one audit row written inside the posting
	require.Len(t, f.auditRepo.logs, 1)
	assert.Equal(t, "debt_transaction.posted", f.auditRepo.logs[0].Action)
	assert.Equal(t, resp.ID, f.auditRepo.logs[0].EntityID)
}

func TestDebtCreate_QueuesStatementRefresh(t *testing.T) {
	f := newDebtFixture(t)
	rice := f.seedProduct(t, "3.50", 10)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "credit",
		Items:      []dto.DebtItemRequest{{ProductID: rice.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, f.statements.payloads, 1)
	payload, ok := f.statements.payloads[0].(worker.StatementJobPayload)
	require.True(t, ok)
	assert.Equal(t, f.customer.ID.String(), payload.CustomerID)
}

func TestDebtCreate_FailedPostingQueuesNothing(t *testing.T) {
	f := newDebtFixture(t)
	rice := f.seedProduct(t, "3.50", 1)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "credit",
		Items:      []dto.DebtItemRequest{{ProductID: rice.ID.String(), Quantity: 5}},
	})
	require.Error(t, err)
	assert.Empty(t, f.statements.payloads)
}

func TestDebtCreate_InsufficientStockFailsPosting(t *testing.T) {
	f := newDebtFixture(t)
	rice := f.seedProduct(t, "3.50", 1)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "credit",
		Items:      []dto.DebtItemRequest{{ProductID: rice.ID.String(), Quantity: 5}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	// no audit row on a failed posting
	assert.Empty(t, f.auditRepo.logs)
}

func TestDebtCreate_BareEntryRequiresTotal(t *testing.T) {
	f := newDebtFixture(t)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "payment",
	})
	assert.ErrorIs(t, err, ErrTotalRequired)
}

func TestDebtCreate_BareEntryUsesClientTotal(t *testing.T) {
	f := newDebtFixture(t)
	total := decimal.RequireFromString("42.00")

	resp, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID:  f.customer.ID.String(),
		ShopID:      f.shopID.String(),
		Type:        "payment",
		TotalAmount: &total,
		Status:      "paid",
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(total))
	assert.Equal(t, "paid", resp.Status)
	assert.Empty(t, resp.Items)
}

func TestDebtCreate_ItemsRejectedOnPayment(t *testing.T) {
	f := newDebtFixture(t)
	rice := f.seedProduct(t, "3.50", 10)

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID: f.customer.ID.String(),
		ShopID:     f.shopID.String(),
		Type:       "payment",
		Items:      []dto.DebtItemRequest{{ProductID: rice.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrItemsOnPayment)
}

func TestDebtCreate_UnknownCustomer(t *testing.T) {
	f := newDebtFixture(t)
	total := decimal.RequireFromString("10.00")

	_, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID:  uuid.NewString(),
		ShopID:      f.shopID.String(),
		Type:        "credit",
		TotalAmount: &total,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Tests: update / delete ────────────────────────────────────────────────────

func TestDebtUpdate_PartialTouchesOnlyGivenFields(t *testing.T) {
	f := newDebtFixture(t)
	total := decimal.RequireFromString("30.00")
	created, err := f.svc.Create(context.Background(), f.userID, dto.CreateDebtTransactionRequest{
		CustomerID:  f.customer.ID.String(),
		ShopID:      f.shopID.String(),
		Type:        "credit",
		TotalAmount: &total,
	})
	require.NoError(t, err)

	newStatus := "paid"
	updated, err := f.svc.Update(context.Background(), uuid.MustParse(created.ID), dto.UpdateDebtTransactionRequest{
		Status: &newStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	assert.Equal(t, "credit", updated.Type)
	assert.True(t, updated.TotalAmount.Equal(total))
}

func TestDebtDelete_Missing(t *testing.T) {
	f := newDebtFixture(t)
	err := f.svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
