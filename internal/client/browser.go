package client

import (
	"context"
	"errors"
	"slices"
	"sync"

	"mentorhub/internal/modules/availability"
)

var ErrSlotNotOffered = errors.New("slot is not offered on the selected day")

type BrowserAPI interface {
	OpenDay(ctx context.Context, mentorID int64, date string) (*availability.DayAvailability, error)
	Month(ctx context.Context, mentorID int64, month string) (*availability.MonthIndex, error)
}

// Browser is the read-only mentee calendar: highlighted days of a month,
// the open slots of one day, and the slot staged for booking.
type Browser struct {
	api BrowserAPI

	mu       sync.Mutex
	mentorID int64
	month    string
	days     []string
	monthGen uint64
	date     string
	slots    []availability.Slot
	dayGen   uint64
	selected *availability.Slot
}

func NewBrowser(api BrowserAPI, mentorID int64) *Browser {
	return &Browser{api: api, mentorID: mentorID}
}

// LoadMonth fetches which days of month have slots. A month without any is
// a normal state, see NoAvailability.
func (b *Browser) LoadMonth(ctx context.Context, mentorID int64, month string) error {
	b.mu.Lock()
	b.monthGen++
	gen := b.monthGen
	b.mentorID = mentorID
	b.month = month
	b.mu.Unlock()

	idx, err := b.api.Month(ctx, mentorID, month)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.monthGen {
		return ErrStale
	}
	if err != nil {
		return err
	}
	b.days = slices.Clone(idx.Days)
	return nil
}

// LoadDay fetches the open slots of date.
func (b *Browser) LoadDay(ctx context.Context, mentorID int64, date string) error {
	b.mu.Lock()
	b.dayGen++
	gen := b.dayGen
	b.mentorID = mentorID
	b.date = date
	b.mu.Unlock()

	day, err := b.api.OpenDay(ctx, mentorID, date)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.dayGen || b.date != date {
		return ErrStale
	}
	if err != nil {
		b.slots = nil
		return err
	}
	b.slots = slices.DeleteFunc(slices.Clone(day.Slots), func(s availability.Slot) bool { return s.Booked })
	return nil
}

// SelectDay clears the staged slot and loads date for the current mentor.
func (b *Browser) SelectDay(ctx context.Context, date string) error {
	b.mu.Lock()
	b.selected = nil
	b.slots = nil
	mentorID := b.mentorID
	b.mu.Unlock()
	return b.LoadDay(ctx, mentorID, date)
}

// SelectSlot stages slot for the booking flow. Nothing is sent.
func (b *Browser) SelectSlot(slot availability.Slot) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.IndexFunc(b.slots, func(s availability.Slot) bool { return s.Key() == slot.Key() })
	if i < 0 {
		return ErrSlotNotOffered
	}
	s := b.slots[i]
	b.selected = &s
	return nil
}

func (b *Browser) Selection() (availability.Slot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.selected == nil {
		return availability.Slot{}, false
	}
	return *b.selected, true
}

func (b *Browser) Days() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.days)
}

func (b *Browser) HasAvailability(date string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.days, date)
}

// NoAvailability reports a loaded month with no selectable day.
func (b *Browser) NoAvailability() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.month != "" && len(b.days) == 0
}

func (b *Browser) Slots() []availability.Slot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.slots)
}

func (b *Browser) Date() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.date
}

func (b *Browser) MentorID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mentorID
}
