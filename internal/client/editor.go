package client

import (
	"context"
	"errors"
	"slices"
	"sync"

	"mentorhub/internal/modules/availability"
)

var (
	// ErrStale is returned by loads whose response arrived after a newer
	// load or a date change. The response is dropped.
	ErrStale      = errors.New("stale response discarded")
	ErrSlotBooked = errors.New("slot is booked")
	ErrNoDate     = errors.New("no date selected")
)

type EditorAPI interface {
	MentorDay(ctx context.Context, date string) (*availability.DayAvailability, error)
	SaveDay(ctx context.Context, req availability.SaveDayRequest) (*availability.DayAvailability, error)
}

// Editor holds a mentor's unsaved slot list for one selected date.
type Editor struct {
	api EditorAPI

	mu        sync.Mutex
	date      string
	timezone  string
	slots     []availability.Slot
	gen       uint64
	loading   bool
	listeners []func(availability.DayAvailability)
}

func NewEditor(api EditorAPI, timezone string) *Editor {
	return &Editor{api: api, timezone: timezone}
}

// OnSaved registers fn to run after every successful save.
func (e *Editor) OnSaved(fn func(availability.DayAvailability)) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// Load selects date and replaces local state with the server's day.
func (e *Editor) Load(ctx context.Context, date string) error {
	e.mu.Lock()
	e.gen++
	gen := e.gen
	if e.date != date {
		e.slots = nil
	}
	e.date = date
	e.loading = true
	e.mu.Unlock()

	day, err := e.api.MentorDay(ctx, date)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen || e.date != date {
		return ErrStale
	}
	e.loading = false
	if err != nil {
		return err
	}
	e.apply(day)
	return nil
}

func (e *Editor) apply(day *availability.DayAvailability) {
	e.slots = slices.Clone(day.Slots)
	availability.SortSlots(e.slots)
	if day.Timezone != "" {
		e.timezone = day.Timezone
	}
}

// Generate merges a freshly generated range into the local list. Existing
// slots keep their booked flag. Nothing is sent to the server.
func (e *Editor) Generate(start, end string, intervalMinutes int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.date == "" {
		return ErrNoDate
	}
	generated, err := availability.GenerateSlots(e.date, start, end, intervalMinutes)
	if err != nil {
		return err
	}
	e.slots = availability.Merge(e.slots, generated)
	return nil
}

// Remove drops slot from the local list. Booked slots cannot be removed;
// an absent slot is a no-op.
func (e *Editor) Remove(slot availability.Slot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.IndexFunc(e.slots, func(s availability.Slot) bool { return s.Key() == slot.Key() })
	if i < 0 {
		return nil
	}
	if e.slots[i].Booked {
		return ErrSlotBooked
	}
	e.slots = slices.Delete(e.slots, i, i+1)
	return nil
}

// Save replaces the server's day with the local list, then reloads it. On
// failure the local list is left as it was.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.date == "" {
		e.mu.Unlock()
		return ErrNoDate
	}
	req := availability.SaveDayRequest{
		Date:     e.date,
		Timezone: e.timezone,
		Slots:    slices.Clone(e.slots),
	}
	e.mu.Unlock()
	if req.Slots == nil {
		req.Slots = []availability.Slot{}
	}

	saved, err := e.api.SaveDay(ctx, req)
	if err != nil {
		return err
	}

	if err := e.Load(ctx, req.Date); err != nil && !errors.Is(err, ErrStale) {
		e.mu.Lock()
		if e.date == req.Date {
			e.apply(saved)
		}
		e.mu.Unlock()
	}

	e.mu.Lock()
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(*saved)
	}
	return nil
}

func (e *Editor) Slots() []availability.Slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.slots)
}

func (e *Editor) Date() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.date
}

func (e *Editor) Timezone() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timezone
}

func (e *Editor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}
