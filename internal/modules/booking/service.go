package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mentorhub/internal/domain"
	"mentorhub/internal/modules/availability"
	"mentorhub/internal/modules/cart"
	"mentorhub/internal/pkg/validator"
	"mentorhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	bookings BookingRepository
	log      *zap.Logger
}

func NewService(bookings BookingRepository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{bookings: bookings, log: log}
}

// CreateBooking reserves an open slot directly, without checkout.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validateRange(req.MentorID, req.StartLocal, req.EndLocal, req.Timezone); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: menteeEmail is invalid", ErrValidation)
	}
	if req.MenteeID == 0 && strings.TrimSpace(req.MenteeEmail) == "" {
		return nil, fmt.Errorf("%w: menteeEmail is required", ErrValidation)
	}

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		MentorID:      req.MentorID,
		MenteeEmail:   strings.TrimSpace(strings.ToLower(req.MenteeEmail)),
		StartLocal:    req.StartLocal,
		EndLocal:      req.EndLocal,
		Timezone:      req.Timezone,
		Notes:         strings.TrimSpace(req.Notes),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
	if req.MenteeID != 0 {
		id := req.MenteeID
		b.MenteeID = &id
	}

	if err := s.reserve(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("booking created",
		zap.String("reference", b.Reference),
		zap.Int64("mentor_id", b.MentorID),
		zap.String("start_local", b.StartLocal),
	)
	return b, nil
}

// ReservePaid books a paid mentoria cart line as a confirmed booking. The
// price comes from the session table, never from the line.
func (s *Service) ReservePaid(ctx context.Context, item cart.Item, menteeID int64, menteeEmail string) (*domain.Booking, error) {
	if item.Kind != cart.KindMentoria {
		return nil, fmt.Errorf("%w: %s is not a mentoria line", ErrValidation, item.ID)
	}
	price, err := PriceCents(SessionKind(item.Meta[MetaSessionKind]))
	if err != nil {
		return nil, fmt.Errorf("%w: line %s: %v", ErrValidation, item.ID, err)
	}
	mentorID, err := strconv.ParseInt(item.Meta[MetaMentorID], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: line %s has no mentor", ErrValidation, item.ID)
	}
	start, end, tz := item.Meta[MetaStartLocal], item.Meta[MetaEndLocal], item.Meta[MetaTimezone]
	if tz == "" {
		tz = "UTC"
	}
	if err := validateRange(mentorID, start, end, tz); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Reference:     uuid.NewString(),
		MentorID:      mentorID,
		MenteeEmail:   menteeEmail,
		StartLocal:    start,
		EndLocal:      end,
		Timezone:      tz,
		SessionKind:   item.Meta[MetaSessionKind],
		PriceCents:    price,
		Status:        domain.BookingConfirmed,
		PaymentStatus: domain.PaymentPaid,
	}
	if menteeID != 0 {
		id := menteeID
		b.MenteeID = &id
	}
	if err := s.reserve(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("paid booking reserved", zap.String("reference", b.Reference), zap.String("item_id", item.ID))
	return b, nil
}

// ConfirmPaid marks a pending booking as paid and confirmed. Repeated calls
// are harmless.
func (s *Service) ConfirmPaid(ctx context.Context, reference string) error {
	changed, err := s.bookings.MarkPaidIdempotent(ctx, reference)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if changed {
		s.log.Info("booking confirmed", zap.String("reference", reference))
	}
	return nil
}

// ConfirmForMentor confirms a direct booking paid outside checkout. Bookings
// of other mentors are reported as not found.
func (s *Service) ConfirmForMentor(ctx context.Context, mentorID int64, reference string) (*domain.Booking, error) {
	b, err := s.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if b.MentorID != mentorID {
		return nil, ErrNotFound
	}
	if b.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: booking %s is cancelled", ErrValidation, reference)
	}
	if err := s.ConfirmPaid(ctx, reference); err != nil {
		return nil, err
	}
	return s.GetByReference(ctx, reference)
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	b, err := s.bookings.GetByReference(ctx, reference)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return b, err
}

func (s *Service) MyBookings(ctx context.Context, menteeID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByMentee(ctx, menteeID, limit, offset)
}

func (s *Service) MentorBookings(ctx context.Context, mentorID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByMentor(ctx, mentorID, limit, offset)
}

func (s *Service) reserve(ctx context.Context, b *domain.Booking) error {
	err := s.bookings.Reserve(ctx, b)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrSlotUnavailable):
		return ErrSlotUnavailable
	case repository.IsUniqueViolation(err, "idx_no_overbooking"):
		return ErrOverbooking
	default:
		return err
	}
}

func validateRange(mentorID int64, startLocal, endLocal, tz string) error {
	if mentorID <= 0 {
		return fmt.Errorf("%w: mentorId is required", ErrValidation)
	}
	start, err := time.Parse(availability.LocalLayout, startLocal)
	if err != nil {
		return fmt.Errorf("%w: startLocal is invalid", ErrValidation)
	}
	end, err := time.Parse(availability.LocalLayout, endLocal)
	if err != nil {
		return fmt.Errorf("%w: endLocal is invalid", ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: endLocal must be after startLocal", ErrValidation)
	}
	if _, err := time.LoadLocation(tz); err != nil || tz == "" {
		return fmt.Errorf("%w: timezone is invalid", ErrValidation)
	}
	return nil
}
