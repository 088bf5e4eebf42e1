package client

import (
	"context"
	"testing"
	"time"

	"mentorhub/internal/modules/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

func TestBrowser_MonthWithoutAvailability(t *testing.T) {
	b := NewBrowser(newFakeAPI(), 7)
	assert.False(t, b.NoAvailability())

	require.NoError(t, b.LoadMonth(context.Background(), 7, "2025-04"))
	assert.True(t, b.NoAvailability())
	assert.Empty(t, b.Days())
}

func TestBrowser_SelectDayAndSlot(t *testing.T) {
	api := newFakeAPI()
	api.days["2025-03-10"] = []availability.Slot{slot("09:00", "09:30", false), slot("09:30", "10:00", true)}
	b := NewBrowser(api, 7)
	ctx := context.Background()

	require.NoError(t, b.LoadMonth(ctx, 7, "2025-03"))
	assert.True(t, b.HasAvailability("2025-03-10"))
	assert.False(t, b.NoAvailability())

	require.NoError(t, b.SelectDay(ctx, "2025-03-10"))
	require.Len(t, b.Slots(), 1)

	assert.ErrorIs(t, b.SelectSlot(slot("09:30", "10:00", false)), ErrSlotNotOffered)
	require.NoError(t, b.SelectSlot(slot("09:00", "09:30", false)))
	sel, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, "2025-03-10T09:00:00", sel.StartLocal)

	require.NoError(t, b.SelectDay(ctx, "2025-03-11"))
	_, ok = b.Selection()
	assert.False(t, ok)
	assert.Empty(t, b.Slots())
}

func TestBrowser_StaleDayIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.days["2025-03-10"] = []availability.Slot{slot("09:00", "09:30", false)}
	gate := make(chan struct{})
	api.gates["2025-03-10"] = gate
	b := NewBrowser(api, 7)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() { errc <- b.SelectDay(ctx, "2025-03-10") }()
	require.Eventually(t, func() bool { return b.Date() == "2025-03-10" }, timeout, tick)

	require.NoError(t, b.SelectDay(ctx, "2025-03-12"))
	close(gate)
	assert.ErrorIs(t, <-errc, ErrStale)
	assert.Equal(t, "2025-03-12", b.Date())
	assert.Empty(t, b.Slots())
}

func TestBrowser_StaleMonthIsDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.days["2025-03-10"] = []availability.Slot{slot("09:00", "09:30", false)}
	api.days["2025-04-02"] = []availability.Slot{slot("10:00", "10:30", false)}
	gate := make(chan struct{})
	api.gates["2025-03"] = gate
	b := NewBrowser(api, 7)
	ctx := context.Background()

	errc := make(chan error, 1)
	go func() { errc <- b.LoadMonth(ctx, 7, "2025-03") }()
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return api.monthCalls == 1
	}, timeout, tick)

	require.NoError(t, b.LoadMonth(ctx, 7, "2025-04"))
	close(gate)
	assert.ErrorIs(t, <-errc, ErrStale)
	assert.Equal(t, []string{"2025-04-02"}, b.Days())
	assert.False(t, b.HasAvailability("2025-03-10"))
}
