package repository

import (
	"context"
	"errors"

	"mentorhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Reserve marks the matching open slot booked and inserts b in one
// transaction. The slot's date and timezone are copied onto b.
func (r *BookingRepository) Reserve(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot domain.AvailabilitySlot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ? AND start_local = ? AND end_local = ?", b.MentorID, b.StartLocal, b.EndLocal).
			First(&slot).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotUnavailable
		}
		if err != nil {
			return err
		}
		if slot.Booked {
			return ErrSlotUnavailable
		}

		res := tx.Model(&domain.AvailabilitySlot{}).
			Where("id = ? AND booked = ?", slot.ID, false).
			Update("booked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotUnavailable
		}

		b.Date = slot.Date
		b.Timezone = slot.Timezone
		return tx.Create(b).Error
	})
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&b).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *BookingRepository) ListByMentee(ctx context.Context, menteeID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("mentee_id = ?", menteeID).
		Order("start_local DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByMentor(ctx context.Context, mentorID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("start_local ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

// MarkPaidIdempotent confirms the booking and reports whether anything changed.
func (r *BookingRepository) MarkPaidIdempotent(ctx context.Context, reference string) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("reference = ?", reference).First(&b).Error; err != nil {
			return notFound(err)
		}
		if b.PaymentStatus == domain.PaymentPaid && b.Status == domain.BookingConfirmed {
			return nil
		}
		res := tx.Model(&domain.Booking{}).Where("reference = ?", reference).Updates(map[string]interface{}{
			"status":         domain.BookingConfirmed,
			"payment_status": domain.PaymentPaid,
		})
		if res.Error != nil {
			return res.Error
		}
		changed = res.RowsAffected > 0
		return nil
	})
	return changed, err
}
