package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mentorhub/internal/domain"
	"mentorhub/internal/modules/booking"
	"mentorhub/internal/modules/cart"
	"mentorhub/internal/repository"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"
)

type Config struct {
	Currency      string
	WebhookSecret string
	// Tolerance bounds the webhook timestamp age. Zero means webhook.DefaultTolerance.
	Tolerance time.Duration
}

type Service struct {
	payments paymentRepo
	carts    *cart.Manager
	bookings bookingReserver
	users    userReader
	gateway  Gateway
	cfg      Config
	log      *zap.Logger
	now      func() time.Time
}

func NewService(payments paymentRepo, carts *cart.Manager, bookings bookingReserver, users userReader, gateway Gateway, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = webhook.DefaultTolerance
	}
	return &Service{
		payments: payments,
		carts:    carts,
		bookings: bookings,
		users:    users,
		gateway:  gateway,
		cfg:      cfg,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateIntent prices product, opens an intent with the gateway and records
// a Payment row for it.
func (s *Service) CreateIntent(ctx context.Context, session string, userID int64, product Product) (*CreateIntentResponse, error) {
	amount, lines, err := s.price(ctx, session, product)
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string, len(product.Metadata)+3)
	for k, v := range product.Metadata {
		meta[k] = v
	}
	meta[metaCartSession] = session
	meta[metaUserID] = strconv.FormatInt(userID, 10)
	meta[metaKind] = product.Kind

	intent, err := s.gateway.CreateIntent(ctx, IntentParams{
		AmountCents: amount,
		Currency:    s.cfg.Currency,
		Metadata:    meta,
	})
	if err != nil {
		return nil, err
	}

	p := &domain.Payment{
		IntentID:    intent.ID,
		CartSession: session,
		UserID:      userID,
		Kind:        product.Kind,
		AmountCents: amount,
		Currency:    s.cfg.Currency,
		Status:      domain.PaymentIntentCreated,
		Lines:       lines,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	s.log.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("kind", product.Kind),
		zap.Int64("amount_cents", amount),
		zap.Int64("user_id", userID),
	)
	return &CreateIntentResponse{
		ClientSecret: intent.ClientSecret,
		IntentID:     intent.ID,
		AmountCents:  amount,
		Currency:     s.cfg.Currency,
	}, nil
}

// price returns the amount to charge and, for carts, the JSON copy of the
// lines it was computed from. Checkout later books exactly those lines.
func (s *Service) price(ctx context.Context, session string, product Product) (int64, string, error) {
	switch product.Kind {
	case ProductCart:
		if session == "" {
			return 0, "", fmt.Errorf("%w: missing cart session", ErrValidation)
		}
		snap, err := s.carts.Get(ctx, session)
		if err != nil {
			return 0, "", err
		}
		if snap.Count == 0 || snap.Totals.Total <= 0 {
			return 0, "", ErrEmptyCart
		}
		for _, it := range snap.Items {
			if err := checkMentoriaLine(it); err != nil {
				return 0, "", err
			}
		}
		raw, err := json.Marshal(snap.Items)
		if err != nil {
			return 0, "", fmt.Errorf("encode priced lines: %w", err)
		}
		return snap.Totals.Total, string(raw), nil
	case ProductMentoria:
		price, err := booking.PriceCents(booking.SessionKind(product.Metadata[booking.MetaSessionKind]))
		if err != nil {
			return 0, "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return price, "", nil
	default:
		return 0, "", ErrUnknownProduct
	}
}

// checkMentoriaLine rejects session lines whose price or quantity differs
// from the session table.
func checkMentoriaLine(it cart.Item) error {
	if it.Kind != cart.KindMentoria {
		return nil
	}
	price, err := booking.PriceCents(booking.SessionKind(it.Meta[booking.MetaSessionKind]))
	if err != nil {
		return fmt.Errorf("%w: line %s: %v", ErrValidation, it.ID, err)
	}
	if it.PriceCents != price || it.Quantity != 1 {
		return fmt.Errorf("%w: line %s does not match the session price", ErrValidation, it.ID)
	}
	return nil
}

// HandleWebhook verifies a signed processor event and applies it. Events for
// intents that already succeeded are acknowledged without side effects.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.cfg.WebhookSecret == "" {
		return ErrWebhookNotEnabled
	}
	evt, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret, webhook.ConstructEventOptions{
		Tolerance:                s.cfg.Tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.log.Warn("webhook signature rejected", zap.Error(err))
		return ErrInvalidSignature
	}

	s.log.Info("payment event received", zap.String("event_id", evt.ID), zap.String("type", string(evt.Type)))

	switch evt.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
			return fmt.Errorf("%w: invalid payment intent payload", ErrValidation)
		}
		paidAt := s.now()
		if evt.Created > 0 {
			paidAt = time.Unix(evt.Created, 0).UTC()
		}
		return s.completeCheckout(ctx, &pi, paidAt)

	case stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(evt.Data.Raw, &pi); err != nil {
			return fmt.Errorf("%w: invalid payment intent payload", ErrValidation)
		}
		reason := "payment failed"
		if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
			reason = pi.LastPaymentError.Msg
		}
		err := s.payments.MarkFailed(ctx, pi.ID, reason)
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("failed event for unknown intent", zap.String("intent_id", pi.ID))
			return nil
		}
		return err

	default:
		s.log.Debug("payment event ignored", zap.String("type", string(evt.Type)))
		return nil
	}
}

func (s *Service) completeCheckout(ctx context.Context, pi *stripe.PaymentIntent, paidAt time.Time) error {
	p, err := s.payments.GetByIntentID(ctx, pi.ID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("succeeded event for unknown intent", zap.String("intent_id", pi.ID))
		return nil
	}
	if err != nil {
		return err
	}
	if p.Status.Settled() {
		s.log.Info("idempotent event, intent already succeeded", zap.String("intent_id", pi.ID))
		return nil
	}

	if pi.Amount > 0 && pi.Amount != p.AmountCents {
		s.log.Error("captured amount differs from priced amount",
			zap.String("intent_id", pi.ID),
			zap.Int64("captured_cents", pi.Amount),
			zap.Int64("priced_cents", p.AmountCents),
		)
		reason := fmt.Sprintf("amount mismatch: captured %d, priced %d", pi.Amount, p.AmountCents)
		_, err := s.payments.MarkSucceededIdempotent(ctx, pi.ID, paidAt, reason)
		return err
	}

	email := s.menteeEmail(ctx, p.UserID)
	var unbooked []string

	switch p.Kind {
	case ProductCart:
		var lines []cart.Item
		if p.Lines == "" {
			unbooked = append(unbooked, "no priced lines recorded")
		} else if err := json.Unmarshal([]byte(p.Lines), &lines); err != nil {
			return fmt.Errorf("decode priced lines of %s: %w", pi.ID, err)
		}
		for _, it := range lines {
			if it.Kind != cart.KindMentoria {
				continue
			}
			reason, err := s.reserve(ctx, it, p.UserID, email)
			if err != nil {
				return err
			}
			if reason != "" {
				unbooked = append(unbooked, reason)
			}
		}
		// Only the paid lines leave the cart. Anything added after pricing stays.
		_, err = s.carts.With(ctx, p.CartSession, func(st *cart.Store) error {
			for _, it := range lines {
				if _, err := st.RemoveItem(ctx, it.ID); err != nil {
					return err
				}
			}
			return nil
		})
	case ProductMentoria:
		it := cart.Item{ID: "intent:" + pi.ID, Kind: cart.KindMentoria, Quantity: 1, Meta: pi.Metadata}
		var reason string
		reason, err = s.reserve(ctx, it, p.UserID, email)
		if reason != "" {
			unbooked = append(unbooked, reason)
		}
	}
	if err != nil {
		return err
	}

	if _, err := s.payments.MarkSucceededIdempotent(ctx, pi.ID, paidAt, strings.Join(unbooked, "; ")); err != nil {
		return err
	}
	if len(unbooked) > 0 {
		s.log.Warn("checkout completed with unbooked lines", zap.String("intent_id", pi.ID), zap.Strings("unbooked", unbooked))
		return nil
	}
	s.log.Info("checkout completed", zap.String("intent_id", pi.ID), zap.String("kind", p.Kind))
	return nil
}

// reserve books a paid line. A line that cannot be booked is reported through
// reason so the payment can be flagged for refund while the rest of the
// checkout completes.
func (s *Service) reserve(ctx context.Context, it cart.Item, userID int64, email string) (reason string, err error) {
	b, err := s.bookings.ReservePaid(ctx, it, userID, email)
	switch {
	case err == nil:
		s.log.Info("paid line reserved", zap.String("item_id", it.ID), zap.String("reference", b.Reference))
		return "", nil
	case errors.Is(err, booking.ErrSlotUnavailable), errors.Is(err, booking.ErrOverbooking), errors.Is(err, booking.ErrValidation):
		s.log.Error("paid line could not be reserved", zap.String("item_id", it.ID), zap.Error(err))
		return it.ID + ": " + err.Error(), nil
	default:
		return "", err
	}
}

func (s *Service) menteeEmail(ctx context.Context, userID int64) string {
	if userID == 0 || s.users == nil {
		return ""
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.log.Warn("mentee lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return ""
	}
	return strings.ToLower(u.Email)
}
