package booking

import (
	"context"

	"mentorhub/internal/domain"
)

type BookingRepository interface {
	Reserve(ctx context.Context, b *domain.Booking) error
	GetByReference(ctx context.Context, reference string) (*domain.Booking, error)
	ListByMentee(ctx context.Context, menteeID int64, limit, offset int) ([]domain.Booking, error)
	ListByMentor(ctx context.Context, mentorID int64, limit, offset int) ([]domain.Booking, error)
	MarkPaidIdempotent(ctx context.Context, reference string) (bool, error)
}
