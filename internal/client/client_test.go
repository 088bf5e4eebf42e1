package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorhub/internal/modules/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_OpenDayAndMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v1/availability", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("month") != "" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"mentorId":7,"month":"2025-03","days":["2025-03-10"]}}`))
			return
		}
		assert.Equal(t, "7", r.URL.Query().Get("mentorId"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"mentorId":7,"date":"2025-03-10","timezone":"UTC","slots":[{"startLocal":"2025-03-10T09:00:00","endLocal":"2025-03-10T09:30:00","booked":false}]}}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithToken("tok"))
	day, err := c.OpenDay(context.Background(), 7, "2025-03-10")
	require.NoError(t, err)
	require.Len(t, day.Slots, 1)
	assert.Equal(t, "2025-03-10T09:00:00", day.Slots[0].StartLocal)

	idx, err := c.Month(context.Background(), 7, "2025-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, idx.Days)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"SLOT_BOOKED","message":"Ese horario ya fue reservado."}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).SaveDay(context.Background(), availability.SaveDayRequest{Date: "2025-03-10", Timezone: "UTC"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "SLOT_BOOKED", apiErr.Code)
	assert.Equal(t, "Ese horario ya fue reservado.", apiErr.Message)
}

func TestClient_NonJSONErrorFallsBackToCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).MentorDay(context.Background(), "2025-03-10")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).MentorDay(context.Background(), "2025-03-10")
	assert.ErrorIs(t, err, ErrNetwork)
}
