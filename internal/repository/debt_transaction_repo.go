package repository

import (
	"context"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DebtTransactionRepository interface {
	// Create persists a transaction and any embedded line items. When tx is
	// non-nil the write joins the caller's transaction (atomic posting path).
	Create(ctx context.Context, tx *gorm.DB, t *model.DebtTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DebtTransaction, error)
	List(ctx context.Context) ([]model.DebtTransaction, error)
	Search(ctx context.Context, filter dto.DebtTransactionFilter) ([]model.DebtTransaction, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.DebtTransaction, error)
	Update(ctx context.Context, t *model.DebtTransaction) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	DB() *gorm.DB
}

type debtTransactionRepo struct{ db *gorm.DB }

func NewDebtTransactionRepository(db *gorm.DB) DebtTransactionRepository {
	return &debtTransactionRepo{db: db}
}

func (r *debtTransactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.DebtTransaction) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(t).Error
}

func (r *debtTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DebtTransaction, error) {
	var t model.DebtTransaction
	err := r.db.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&t, "id = ?", id).Error
	return &t, err
}

func (r *debtTransactionRepo) List(ctx context.Context) ([]model.DebtTransaction, error) {
	var txs []model.DebtTransaction
	err := r.db.WithContext(ctx).Preload("Items").Find(&txs).Error
	return txs, err
}

func (r *debtTransactionRepo) Search(ctx context.Context, filter dto.DebtTransactionFilter) ([]model.DebtTransaction, error) {
	q := r.db.WithContext(ctx).Model(&model.DebtTransaction{}).Preload("Items")
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	var txs []model.DebtTransaction
	err := q.Find(&txs).Error
	return txs, err
}

func (r *debtTransactionRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.DebtTransaction, error) {
	var txs []model.DebtTransaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Preload("Items").Preload("Items.Product").
		Find(&txs).Error
	return txs, err
}

func (r *debtTransactionRepo) Update(ctx context.Context, t *model.DebtTransaction) error {
	return r.db.WithContext(ctx).Omit("Items").Save(t).Error
}

func (r *debtTransactionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.DebtTransaction{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *debtTransactionRepo) DB() *gorm.DB { return r.db }
