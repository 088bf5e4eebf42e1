package booking

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"mentorhub/internal/modules/availability"
	"mentorhub/internal/modules/cart"
)

type SessionKind string

const (
	SessionExpress  SessionKind = "express"
	SessionProfunda SessionKind = "profunda"
)

// sessionPrices are in currency units.
var sessionPrices = map[SessionKind]float64{
	SessionExpress:  25.00,
	SessionProfunda: 45.00,
}

var sessionTitles = map[SessionKind]string{
	SessionExpress:  "Mentoría express",
	SessionProfunda: "Mentoría profunda",
}

// PriceCents returns the price of kind in minor units.
func PriceCents(kind SessionKind) (int64, error) {
	price, ok := sessionPrices[kind]
	if !ok {
		return 0, ErrUnknownSessionKind
	}
	return int64(math.Round(price * 100)), nil
}

// Selection is what a mentee picked in the browser before adding to cart.
type Selection struct {
	MentorID    int64             `json:"mentorId"`
	Date        string            `json:"date"`
	Timezone    string            `json:"timezone"`
	Slot        availability.Slot `json:"slot"`
	SessionKind SessionKind       `json:"sessionKind"`
}

// ItemID builds the cart line id for a slot and session kind. Picking the
// same combination again yields the same id.
func ItemID(mentorID int64, date string, slot availability.Slot, kind SessionKind) string {
	return fmt.Sprintf("mentoria:%d:%s:%s-%s:%s", mentorID, date, slot.StartLocal, slot.EndLocal, kind)
}

type SlotChecker interface {
	IsOpen(ctx context.Context, mentorID int64, slot availability.Slot) (bool, error)
}

// Flow turns a selected slot into a cart line instead of booking it
// directly. The reservation happens once checkout is paid.
type Flow struct {
	slots SlotChecker
}

func NewFlow(slots SlotChecker) *Flow {
	return &Flow{slots: slots}
}

func (f *Flow) BuildItem(ctx context.Context, userID int64, sel Selection) (cart.Item, error) {
	if userID == 0 {
		return cart.Item{}, ErrUnauthenticated
	}
	if sel.Slot.StartLocal == "" || sel.Slot.EndLocal == "" {
		return cart.Item{}, ErrNoSlotSelected
	}
	price, err := PriceCents(sel.SessionKind)
	if err != nil {
		return cart.Item{}, err
	}
	if sel.MentorID <= 0 {
		return cart.Item{}, fmt.Errorf("%w: mentorId is required", ErrValidation)
	}
	date := sel.Date
	if date == "" {
		date = sel.Slot.Date()
	}
	if date != sel.Slot.Date() {
		return cart.Item{}, fmt.Errorf("%w: slot is not on %s", ErrValidation, date)
	}

	open, err := f.slots.IsOpen(ctx, sel.MentorID, sel.Slot)
	if err != nil {
		return cart.Item{}, err
	}
	if !open {
		return cart.Item{}, ErrSlotUnavailable
	}

	return cart.Item{
		ID:         ItemID(sel.MentorID, date, sel.Slot, sel.SessionKind),
		Kind:       cart.KindMentoria,
		Title:      fmt.Sprintf("%s · %s %s", sessionTitles[sel.SessionKind], date, clock(sel.Slot.StartLocal)),
		PriceCents: price,
		Quantity:   1,
		Meta: map[string]string{
			MetaMentorID:    strconv.FormatInt(sel.MentorID, 10),
			MetaDate:        date,
			MetaStartLocal:  sel.Slot.StartLocal,
			MetaEndLocal:    sel.Slot.EndLocal,
			MetaTimezone:    sel.Timezone,
			MetaSessionKind: string(sel.SessionKind),
		},
	}, nil
}

// Cart line meta keys for mentoria items.
const (
	MetaMentorID    = "mentorId"
	MetaDate        = "date"
	MetaStartLocal  = "startLocal"
	MetaEndLocal    = "endLocal"
	MetaTimezone    = "timezone"
	MetaSessionKind = "sessionKind"
)

// clock returns HH:mm of a wall-clock timestamp.
func clock(local string) string {
	if len(local) < len("2006-01-02T15:04") {
		return local
	}
	return local[len("2006-01-02T") : len("2006-01-02T15:04")]
}
