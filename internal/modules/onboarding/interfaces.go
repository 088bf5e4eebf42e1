package onboarding

import (
	"context"

	"mentorhub/internal/domain"
)

type StateRepository interface {
	Get(ctx context.Context, userID int64) (*domain.OnboardingState, error)
	Save(ctx context.Context, st *domain.OnboardingState) error
}

type MentorPublisher interface {
	Upsert(ctx context.Context, p *domain.MentorProfile) error
}

type UserCompleter interface {
	MarkOnboardingCompleted(ctx context.Context, id int64) error
}
