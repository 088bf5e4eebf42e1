package repository

import (
	"context"
	"errors"

	"mentorhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepository struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// Get returns the user's onboarding state, or nil when none was started.
func (r *OnboardingRepository) Get(ctx context.Context, userID int64) (*domain.OnboardingState, error) {
	var st domain.OnboardingState
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *OnboardingRepository) Save(ctx context.Context, st *domain.OnboardingState) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "next_step", "payload", "completed", "updated_at"}),
	}).Create(st).Error
}
