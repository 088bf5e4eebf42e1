package payment

import (
	"context"
	"time"

	"mentorhub/internal/domain"
	"mentorhub/internal/modules/cart"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	MarkSucceededIdempotent(ctx context.Context, intentID string, paidAt time.Time, unbooked string) (bool, error)
	MarkFailed(ctx context.Context, intentID, reason string) error
}

type bookingReserver interface {
	ReservePaid(ctx context.Context, item cart.Item, menteeID int64, menteeEmail string) (*domain.Booking, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
