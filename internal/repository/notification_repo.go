package repository

import (
	"context"
	"time"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	List(ctx context.Context) ([]model.Notification, error)
	Search(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error)
	Update(ctx context.Context, n *model.Notification) error
	// UpdateStatus is used by the delivery worker to move pending → sent/failed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// ListPendingOlderThan feeds the retry cron: pending notifications that
	// have sat unsent past the cutoff.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *notificationRepo) List(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) Search(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Model(&model.Notification{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var notifications []model.Notification
	err := q.Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) Update(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notificationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *notificationRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", model.NotificationPending, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Notification{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
