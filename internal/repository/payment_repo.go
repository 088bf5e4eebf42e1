package repository

import (
	"context"
	"errors"
	"time"

	"mentorhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// MarkSucceededIdempotent settles the payment once. A non-empty unbooked
// leaves it in needs_refund with unbooked as the reason. The returned flag is
// false when it was already settled.
func (r *PaymentRepository) MarkSucceededIdempotent(ctx context.Context, intentID string, paidAt time.Time, unbooked string) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("intent_id = ?", intentID).First(&p).Error; err != nil {
			return notFound(err)
		}
		if p.Status.Settled() {
			changed = false
			return nil
		}
		status := domain.PaymentIntentSucceeded
		if unbooked != "" {
			status = domain.PaymentIntentNeedsRefund
		}
		res := tx.Model(&domain.Payment{}).Where("intent_id = ?", intentID).Updates(map[string]interface{}{
			"status":         status,
			"failure_reason": unbooked,
			"paid_at":        paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

// ListNeedingRefund returns captured payments that left lines unbooked,
// oldest first.
func (r *PaymentRepository) ListNeedingRefund(ctx context.Context, limit int) ([]domain.Payment, error) {
	var out []domain.Payment
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.PaymentIntentNeedsRefund).
		Order("paid_at ASC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkFailed records a failure unless the payment is already settled.
func (r *PaymentRepository) MarkFailed(ctx context.Context, intentID, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("intent_id = ? AND status NOT IN ?", intentID, []string{string(domain.PaymentIntentSucceeded), string(domain.PaymentIntentNeedsRefund)}).
		Updates(map[string]interface{}{
			"status":         domain.PaymentIntentFailed,
			"failure_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	var existing int64
	if err := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("intent_id = ?", intentID).Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		return ErrNotFound
	}
	return nil
}
