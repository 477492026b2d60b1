package repository

import (
	"context"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductTransactionRepository interface {
	Create(ctx context.Context, pt *model.ProductTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductTransaction, error)
	List(ctx context.Context) ([]model.ProductTransaction, error)
	Search(ctx context.Context, filter dto.ProductTransactionFilter) ([]model.ProductTransaction, error)
	Update(ctx context.Context, pt *model.ProductTransaction) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type productTransactionRepo struct{ db *gorm.DB }

func NewProductTransactionRepository(db *gorm.DB) ProductTransactionRepository {
	return &productTransactionRepo{db: db}
}

func (r *productTransactionRepo) Create(ctx context.Context, pt *model.ProductTransaction) error {
	return r.db.WithContext(ctx).Create(pt).Error
}

func (r *productTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductTransaction, error) {
	var pt model.ProductTransaction
	err := r.db.WithContext(ctx).First(&pt, "id = ?", id).Error
	return &pt, err
}

func (r *productTransactionRepo) List(ctx context.Context) ([]model.ProductTransaction, error) {
	var pts []model.ProductTransaction
	err := r.db.WithContext(ctx).Find(&pts).Error
	return pts, err
}

func (r *productTransactionRepo) Search(ctx context.Context, filter dto.ProductTransactionFilter) ([]model.ProductTransaction, error) {
	q := r.db.WithContext(ctx).Model(&model.ProductTransaction{})
	if filter.DebtTransactionID != "" {
		q = q.Where("debt_transaction_id = ?", filter.DebtTransactionID)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	var pts []model.ProductTransaction
	err := q.Find(&pts).Error
	return pts, err
}

func (r *productTransactionRepo) Update(ctx context.Context, pt *model.ProductTransaction) error {
	return r.db.WithContext(ctx).Save(pt).Error
}

func (r *productTransactionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.ProductTransaction{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
