package repository

import (
	"context"
	"fmt"

	"mentorhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// ListDay returns a mentor's stored slots for one date ordered by start.
func (r *AvailabilityRepository) ListDay(ctx context.Context, mentorID int64, date string, onlyOpen bool) ([]domain.AvailabilitySlot, error) {
	q := r.db.WithContext(ctx).
		Where("mentor_id = ? AND date = ?", mentorID, date)
	if onlyOpen {
		q = q.Where("booked = ?", false)
	}
	var slots []domain.AvailabilitySlot
	if err := q.Order("start_local ASC, end_local ASC").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("list day availability: %w", err)
	}
	return slots, nil
}

// MonthDays returns the sorted distinct dates in month ("YYYY-MM") with at least one slot.
func (r *AvailabilityRepository) MonthDays(ctx context.Context, mentorID int64, month string) ([]string, error) {
	days := []string{}
	err := r.db.WithContext(ctx).
		Model(&domain.AvailabilitySlot{}).
		Distinct("date").
		Where("mentor_id = ? AND date LIKE ?", mentorID, month+"-%").
		Order("date ASC").
		Pluck("date", &days).Error
	if err != nil {
		return nil, fmt.Errorf("month availability: %w", err)
	}
	return days, nil
}

// IsOpen reports whether the exact slot exists and is not booked.
func (r *AvailabilityRepository) IsOpen(ctx context.Context, mentorID int64, startLocal, endLocal string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&domain.AvailabilitySlot{}).
		Where("mentor_id = ? AND start_local = ? AND end_local = ? AND booked = ?", mentorID, startLocal, endLocal, false).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ReplaceDay swaps the stored slots of one date for the result of build,
// which receives the locked current rows. Runs in a single transaction.
func (r *AvailabilityRepository) ReplaceDay(
	ctx context.Context,
	mentorID int64,
	date string,
	build func(existing []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error),
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []domain.AvailabilitySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("mentor_id = ? AND date = ?", mentorID, date).
			Order("start_local ASC").
			Find(&existing).Error; err != nil {
			return err
		}

		next, err := build(existing)
		if err != nil {
			return err
		}

		if err := tx.Where("mentor_id = ? AND date = ?", mentorID, date).
			Delete(&domain.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(next) == 0 {
			return nil
		}
		for i := range next {
			next[i].ID = 0
			next[i].MentorID = mentorID
			next[i].Date = date
		}
		return tx.Create(&next).Error
	})
}
