package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"mentorhub/internal/client"
	"mentorhub/internal/config"
	"mentorhub/internal/database/dbtest"
	"mentorhub/internal/modules/availability"
	"mentorhub/internal/modules/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const webhookSecret = "whsec_e2e"

type stubGateway struct{ n int }

func (g *stubGateway) CreateIntent(_ context.Context, p payment.IntentParams) (*payment.Intent, error) {
	g.n++
	id := fmt.Sprintf("pi_e2e_%d", g.n)
	return &payment.Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type suite struct {
	t    *testing.T
	srv  *httptest.Server
	http *http.Client
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:              "test",
		JWTSecret:           "e2e-secret",
		JWTAccessTTL:        time.Hour,
		CartTTL:             24 * time.Hour,
		DiscountCode:        "MENTOR8",
		Currency:            "usd",
		StripeWebhookSecret: webhookSecret,
		RateLimitPerMinute:  1000,
		SignInRedirect:      "/sign-in",
	}
	s := New(Deps{Config: cfg, DB: dbtest.Open(t, "server"), Gateway: &stubGateway{}})
	srv := httptest.NewServer(s.Router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &suite{t: t, srv: srv, http: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
}

func (s *suite) do(method, path, token string, body any, headers ...string) (int, apiResponse) {
	s.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.http.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	var out apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	require.NoError(s.t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func (s *suite) register(email, role string) (string, int64) {
	s.t.Helper()
	status, resp := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "supersecret", "name": "Persona " + role, "role": role,
	})
	require.Equal(s.t, http.StatusCreated, status)
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &data))
	return data.Token, data.User.ID
}

func at(start, end string) availability.Slot {
	return availability.Slot{StartLocal: "2025-03-10T" + start + ":00", EndLocal: "2025-03-10T" + end + ":00"}
}

func TestEndToEnd_AvailabilityBookingCheckout(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	mentorToken, mentorID := s.register("mentora@example.com", "mentor")

	// Mentor builds the day.
	ed := client.NewEditor(client.New(s.srv.URL, client.WithToken(mentorToken)), "America/Bogota")
	require.NoError(t, ed.Load(ctx, "2025-03-10"))
	assert.Empty(t, ed.Slots())
	require.NoError(t, ed.Generate("09:00", "12:00", 30))
	require.Len(t, ed.Slots(), 6)
	require.NoError(t, ed.Remove(at("10:00", "10:30")))
	require.NoError(t, ed.Save(ctx))
	require.NoError(t, ed.Load(ctx, "2025-03-10"))
	require.Len(t, ed.Slots(), 5)
	assert.Equal(t, "America/Bogota", ed.Timezone())

	// Mentee browses anonymously.
	br := client.NewBrowser(client.New(s.srv.URL), mentorID)
	require.NoError(t, br.LoadMonth(ctx, mentorID, "2025-03"))
	assert.Equal(t, []string{"2025-03-10"}, br.Days())
	require.NoError(t, br.LoadMonth(ctx, mentorID, "2025-04"))
	assert.True(t, br.NoAvailability())
	require.NoError(t, br.SelectDay(ctx, "2025-03-10"))
	require.Len(t, br.Slots(), 5)
	require.NoError(t, br.SelectSlot(at("09:00", "09:30")))
	picked, ok := br.Selection()
	require.True(t, ok)

	selection := map[string]any{
		"mentorId":    mentorID,
		"date":        "2025-03-10",
		"timezone":    "America/Bogota",
		"slot":        picked,
		"sessionKind": "express",
	}

	status, resp := s.do(http.MethodPost, "/api/v1/bookings/cart", "", selection)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", resp.Error.Code)
	assert.Equal(t, "/sign-in", resp.Error.Details["redirect"])

	menteeToken, _ := s.register("mentee@example.com", "mentee")
	status, _ = s.do(http.MethodPost, "/api/v1/bookings/cart", menteeToken, selection)
	require.Equal(t, http.StatusOK, status)
	status, resp = s.do(http.MethodPost, "/api/v1/bookings/cart", menteeToken, selection)
	require.Equal(t, http.StatusOK, status)
	var added struct {
		Cart struct {
			Count  int `json:"count"`
			Totals struct {
				Total int64 `json:"total"`
			} `json:"totals"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.Equal(t, 1, added.Cart.Count)
	assert.Equal(t, int64(2800), added.Cart.Totals.Total)

	// Checkout.
	status, resp = s.do(http.MethodPost, "/api/v1/payments/intent", menteeToken, map[string]any{"product": map[string]any{"kind": "cart"}})
	require.Equal(t, http.StatusOK, status)
	var intent payment.CreateIntentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &intent))
	assert.Equal(t, int64(2800), intent.AmountCents)

	payload, err := json.Marshal(map[string]any{
		"id":          "evt_e2e",
		"object":      "event",
		"api_version": stripe.APIVersion,
		"created":     time.Now().Unix(),
		"type":        "payment_intent.succeeded",
		"data":        map[string]any{"object": map[string]any{"id": intent.IntentID, "object": "payment_intent"}},
	})
	require.NoError(t, err)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: webhookSecret, Timestamp: time.Now(), Scheme: "v1"})
	status, _ = s.do(http.MethodPost, "/api/v1/payments/webhook", "", payload, "Stripe-Signature", signed.Header)
	require.Equal(t, http.StatusOK, status)

	status, resp = s.do(http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"state":"empty"`)

	// The paid slot is now booked and hidden from mentees.
	require.NoError(t, ed.Load(ctx, "2025-03-10"))
	booked := ed.Slots()[0]
	assert.True(t, booked.Booked)
	assert.ErrorIs(t, ed.Remove(booked), client.ErrSlotBooked)
	require.NoError(t, br.LoadDay(ctx, mentorID, "2025-03-10"))
	assert.Len(t, br.Slots(), 4)

	status, resp = s.do(http.MethodGet, "/api/v1/bookings/my", menteeToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), `"status":"confirmed"`)

	status, resp = s.do(http.MethodGet, "/api/v1/mentor/bookings", mentorToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(resp.Data), "2025-03-10T09:00:00")

	// Saving a day without its booked slot is rejected.
	api := client.New(s.srv.URL, client.WithToken(mentorToken))
	_, err = api.SaveDay(ctx, availability.SaveDayRequest{Date: "2025-03-10", Timezone: "America/Bogota", Slots: []availability.Slot{}})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "SLOT_BOOKED", apiErr.Code)

	// Mentor tools need a bearer token.
	status, _ = s.do(http.MethodGet, "/api/v1/mentor/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.do(http.MethodPost, "/api/v1/mentor/bookings/unknown/confirm", mentorToken, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Mentees cannot edit availability.
	status, _ = s.do(http.MethodPost, "/api/v1/availability", menteeToken, availability.SaveDayRequest{Date: "2025-03-11", Timezone: "UTC"})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestHealth(t *testing.T) {
	s := setupSuite(t)
	resp, err := s.http.Get(s.srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOriginAllowed(t *testing.T) {
	allow := originAllowed([]string{"https://app.mentorhub.io"})
	assert.True(t, allow("https://app.mentorhub.io"))
	assert.True(t, allow("http://localhost:5173"))
	assert.False(t, allow("https://evil.example"))
}
