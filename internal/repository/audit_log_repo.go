package repository

import (
	"context"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(ctx context.Context, l *model.AuditLog) error
	// CreateTx joins an open transaction (debt posting audit trail).
	CreateTx(tx *gorm.DB, l *model.AuditLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error)
	List(ctx context.Context) ([]model.AuditLog, error)
	Search(ctx context.Context, filter dto.AuditLogFilter) ([]model.AuditLog, error)
	Update(ctx context.Context, l *model.AuditLog) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type auditLogRepo struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository { return &auditLogRepo{db: db} }

func (r *auditLogRepo) Create(ctx context.Context, l *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *auditLogRepo) CreateTx(tx *gorm.DB, l *model.AuditLog) error {
	return tx.Create(l).Error
}

func (r *auditLogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AuditLog, error) {
	var l model.AuditLog
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *auditLogRepo) List(ctx context.Context) ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *auditLogRepo) Search(ctx context.Context, filter dto.AuditLogFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	var logs []model.AuditLog
	err := q.Order("created_at DESC").Find(&logs).Error
	return logs, err
}

func (r *auditLogRepo) Update(ctx context.Context, l *model.AuditLog) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *auditLogRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.AuditLog{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
