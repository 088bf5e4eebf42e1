package availability

import (
	"context"

	"mentorhub/internal/domain"
)

type SlotRepository interface {
	ListDay(ctx context.Context, mentorID int64, date string, onlyOpen bool) ([]domain.AvailabilitySlot, error)
	MonthDays(ctx context.Context, mentorID int64, month string) ([]string, error)
	IsOpen(ctx context.Context, mentorID int64, startLocal, endLocal string) (bool, error)
	ReplaceDay(ctx context.Context, mentorID int64, date string, build func(existing []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error)) error
}
