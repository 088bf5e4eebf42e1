package availability

import (
	"context"
	"testing"

	"mentorhub/internal/database/dbtest"
	"mentorhub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()
	db := dbtest.Open(t, "availability")
	return NewService(repository.NewAvailabilityRepository(db), nil)
}

func TestService_SaveAndReload(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	slots, err := GenerateSlots("2025-03-10", "09:00", "12:00", 30)
	require.NoError(t, err)

	day, err := svc.SaveDay(ctx, 9, SaveDayRequest{Date: "2025-03-10", Timezone: "America/Bogota", Slots: slots})
	require.NoError(t, err)
	assert.Len(t, day.Slots, 6)
	assert.Equal(t, "America/Bogota", day.Timezone)

	idx, err := svc.Month(ctx, 9, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, idx.Days)
}

func TestService_SaveIgnoresIncomingBookedFlag(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()

	slots := []Slot{{StartLocal: "2025-03-10T09:00:00", EndLocal: "2025-03-10T09:30:00", Booked: true}}
	day, err := svc.SaveDay(ctx, 9, SaveDayRequest{Date: "2025-03-10", Timezone: "UTC", Slots: slots})
	require.NoError(t, err)
	require.Len(t, day.Slots, 1)
	assert.False(t, day.Slots[0].Booked)
}

func TestService_BookedSlotSurvivesOnlyWhenKept(t *testing.T) {
	db := dbtest.Open(t, "availability")
	svc := NewService(repository.NewAvailabilityRepository(db), nil)
	ctx := context.Background()

	slots, _ := GenerateSlots("2025-03-10", "09:00", "10:00", 30)
	_, err := svc.SaveDay(ctx, 9, SaveDayRequest{Date: "2025-03-10", Timezone: "UTC", Slots: slots})
	require.NoError(t, err)
	require.NoError(t, db.Exec("UPDATE availability_slots SET booked = ? WHERE start_local = ?", true, "2025-03-10T09:00:00").Error)

	_, err = svc.SaveDay(ctx, 9, SaveDayRequest{Date: "2025-03-10", Timezone: "UTC", Slots: slots[1:]})
	assert.ErrorIs(t, err, ErrConflict)

	day, err := svc.Day(ctx, 9, "2025-03-10", true)
	require.NoError(t, err)
	require.Len(t, day.Slots, 2)
	assert.True(t, day.Slots[0].Booked)

	// keeping it but sending booked=false does not release it
	kept := []Slot{{StartLocal: slots[0].StartLocal, EndLocal: slots[0].EndLocal}}
	day, err = svc.SaveDay(ctx, 9, SaveDayRequest{Date: "2025-03-10", Timezone: "UTC", Slots: kept})
	require.NoError(t, err)
	require.Len(t, day.Slots, 1)
	assert.True(t, day.Slots[0].Booked)

	open, err := svc.Day(ctx, 9, "2025-03-10", false)
	require.NoError(t, err)
	assert.Empty(t, open.Slots)
}

func TestService_SaveValidation(t *testing.T) {
	svc := setupTestService(t)
	ctx := context.Background()
	ok := Slot{StartLocal: "2025-03-10T09:00:00", EndLocal: "2025-03-10T09:30:00"}

	cases := map[string]SaveDayRequest{
		"bad date":      {Date: "10-03-2025", Timezone: "UTC"},
		"bad tz":        {Date: "2025-03-10", Timezone: "Mars/Base"},
		"missing tz":    {Date: "2025-03-10"},
		"reversed":      {Date: "2025-03-10", Timezone: "UTC", Slots: []Slot{{StartLocal: ok.EndLocal, EndLocal: ok.StartLocal}}},
		"other day":     {Date: "2025-03-11", Timezone: "UTC", Slots: []Slot{ok}},
		"duplicate":     {Date: "2025-03-10", Timezone: "UTC", Slots: []Slot{ok, ok}},
		"unparseable":   {Date: "2025-03-10", Timezone: "UTC", Slots: []Slot{{StartLocal: "2025-03-10 09:00", EndLocal: ok.EndLocal}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SaveDay(ctx, 9, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_EmptyMonthIsNotAnError(t *testing.T) {
	svc := setupTestService(t)
	idx, err := svc.Month(context.Background(), 9, "2030-01")
	require.NoError(t, err)
	assert.Equal(t, []string{}, idx.Days)

	_, err = svc.Month(context.Background(), 9, "2030-1")
	assert.ErrorIs(t, err, ErrValidation)
}
