package repository

import (
	"context"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/dto"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportTicketRepository interface {
	Create(ctx context.Context, t *model.SupportTicket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error)
	List(ctx context.Context) ([]model.SupportTicket, error)
	Search(ctx context.Context, filter dto.SupportTicketFilter) ([]model.SupportTicket, error)
	Update(ctx context.Context, t *model.SupportTicket) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type supportTicketRepo struct{ db *gorm.DB }

func NewSupportTicketRepository(db *gorm.DB) SupportTicketRepository {
	return &supportTicketRepo{db: db}
}

func (r *supportTicketRepo) Create(ctx context.Context, t *model.SupportTicket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *supportTicketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SupportTicket, error) {
	var t model.SupportTicket
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return &t, err
}

func (r *supportTicketRepo) List(ctx context.Context) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := r.db.WithContext(ctx).Find(&tickets).Error
	return tickets, err
}

func (r *supportTicketRepo) Search(ctx context.Context, filter dto.SupportTicketFilter) ([]model.SupportTicket, error) {
	q := r.db.WithContext(ctx).Model(&model.SupportTicket{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var tickets []model.SupportTicket
	err := q.Find(&tickets).Error
	return tickets, err
}

func (r *supportTicketRepo) Update(ctx context.Context, t *model.SupportTicket) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *supportTicketRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.SupportTicket{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}
