package repository

import (
	"context"
	"time"

	"github.com/fitvibes/fitvibes-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.PaymentHistory) error
	FindByGroup(ctx context.Context, groupID uuid.UUID, cycleStart, cycleEnd *time.Time) ([]entity.PaymentHistory, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.PaymentHistory) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByGroup(ctx context.Context, groupID uuid.UUID, cycleStart, cycleEnd *time.Time) ([]entity.PaymentHistory, error) {
	query := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Preload("FromUser", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("ToUser", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at desc")

	if cycleStart != nil {
		query = query.Where("created_at >= ?", *cycleStart)
	}
	if cycleEnd != nil {
		query = query.Where("created_at <= ?", *cycleEnd)
	}

	var payments []entity.PaymentHistory
	err := query.Find(&payments).Error
	return payments, err
}
