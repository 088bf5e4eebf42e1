package availability

import (
	"context"
	"fmt"
	"time"

	"mentorhub/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	slots SlotRepository
	log   *zap.Logger
}

func NewService(slots SlotRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{slots: slots, log: log}
}

// Day returns the slots of one date. The mentee view omits booked slots.
func (s *Service) Day(ctx context.Context, mentorID int64, date string, includeBooked bool) (*DayAvailability, error) {
	if mentorID <= 0 {
		return nil, fmt.Errorf("%w: mentorId is required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	rows, err := s.slots.ListDay(ctx, mentorID, date, !includeBooked)
	if err != nil {
		return nil, err
	}

	day := &DayAvailability{MentorID: mentorID, Date: date, Slots: make([]Slot, 0, len(rows))}
	for _, r := range rows {
		if day.Timezone == "" {
			day.Timezone = r.Timezone
		}
		day.Slots = append(day.Slots, Slot{StartLocal: r.StartLocal, EndLocal: r.EndLocal, Booked: r.Booked})
	}
	SortSlots(day.Slots)
	return day, nil
}

// Month returns the dates of month ("YYYY-MM") with at least one stored slot.
func (s *Service) Month(ctx context.Context, mentorID int64, month string) (*MonthIndex, error) {
	if mentorID <= 0 {
		return nil, fmt.Errorf("%w: mentorId is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM", ErrValidation)
	}

	days, err := s.slots.MonthDays(ctx, mentorID, month)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []string{}
	}
	return &MonthIndex{MentorID: mentorID, Month: month, Days: days}, nil
}

// IsOpen reports whether slot is stored for the mentor and still unbooked.
func (s *Service) IsOpen(ctx context.Context, mentorID int64, slot Slot) (bool, error) {
	return s.slots.IsOpen(ctx, mentorID, slot.StartLocal, slot.EndLocal)
}

// SaveDay replaces the mentor's slots for req.Date with req.Slots. Booked
// slots must be present in the request and stay booked.
func (s *Service) SaveDay(ctx context.Context, mentorID int64, req SaveDayRequest) (*DayAvailability, error) {
	if mentorID <= 0 {
		return nil, fmt.Errorf("%w: mentorId is required", ErrValidation)
	}
	if err := validateDay(req); err != nil {
		return nil, err
	}

	err := s.slots.ReplaceDay(ctx, mentorID, req.Date, func(existing []domain.AvailabilitySlot) ([]domain.AvailabilitySlot, error) {
		incoming := make(map[SlotKey]struct{}, len(req.Slots))
		for _, sl := range req.Slots {
			incoming[sl.Key()] = struct{}{}
		}

		booked := make(map[SlotKey]struct{})
		for _, ex := range existing {
			if !ex.Booked {
				continue
			}
			key := SlotKey{StartLocal: ex.StartLocal, EndLocal: ex.EndLocal}
			if _, ok := incoming[key]; !ok {
				return nil, fmt.Errorf("%w: %s-%s", ErrConflict, ex.StartLocal, ex.EndLocal)
			}
			booked[key] = struct{}{}
		}

		next := make([]domain.AvailabilitySlot, 0, len(req.Slots))
		for _, sl := range req.Slots {
			_, isBooked := booked[sl.Key()]
			next = append(next, domain.AvailabilitySlot{
				MentorID:   mentorID,
				Date:       req.Date,
				StartLocal: sl.StartLocal,
				EndLocal:   sl.EndLocal,
				Timezone:   req.Timezone,
				Booked:     isBooked,
			})
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("availability saved",
		zap.Int64("mentor_id", mentorID),
		zap.String("date", req.Date),
		zap.Int("slots", len(req.Slots)),
	)
	return s.Day(ctx, mentorID, req.Date, true)
}

func validateDay(req SaveDayRequest) error {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrValidation)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrValidation, req.Timezone)
	}

	seen := make(map[SlotKey]struct{}, len(req.Slots))
	for i, sl := range req.Slots {
		start, err := time.Parse(LocalLayout, sl.StartLocal)
		if err != nil {
			return fmt.Errorf("%w: slot %d has an invalid startLocal", ErrValidation, i)
		}
		end, err := time.Parse(LocalLayout, sl.EndLocal)
		if err != nil {
			return fmt.Errorf("%w: slot %d has an invalid endLocal", ErrValidation, i)
		}
		if !end.After(start) {
			return fmt.Errorf("%w: slot %d must end after it starts", ErrValidation, i)
		}
		if sl.Date() != req.Date {
			return fmt.Errorf("%w: slot %d is not on %s", ErrValidation, i, req.Date)
		}
		if _, dup := seen[sl.Key()]; dup {
			return fmt.Errorf("%w: slot %d is duplicated", ErrValidation, i)
		}
		seen[sl.Key()] = struct{}{}
	}
	return nil
}
