package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_ResolvesInZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	s := Slot{StartLocal: "2025-03-10T09:00:00", EndLocal: "2025-03-10T09:30:00"}
	start, err := s.Start(loc)
	require.NoError(t, err)
	end, err := s.End(loc)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10T14:00:00Z", start.UTC().Format(time.RFC3339))
	assert.Equal(t, 30*time.Minute, end.Sub(start))
	assert.Equal(t, "2025-03-10", s.Date())
}
