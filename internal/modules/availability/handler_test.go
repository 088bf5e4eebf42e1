package availability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorhub/internal/database/dbtest"
	"mentorhub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t, "availability_handler")
	h := NewHandler(NewService(repository.NewAvailabilityRepository(db), nil), nil)

	r := gin.New()
	v1 := r.Group("/api/v1")
	h.RegisterPublicRoutes(v1)

	mentor := v1.Group("")
	mentor.Use(func(c *gin.Context) {
		c.Set("user_id", int64(42))
		c.Set("role", "mentor")
		c.Next()
	})
	h.RegisterMentorRoutes(mentor)
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestHandler_SaveThenBrowse(t *testing.T) {
	r := setupTestRouter(t)

	slots, err := GenerateSlots("2025-03-10", "09:00", "10:30", 30)
	require.NoError(t, err)
	rr := doJSONRequest(r, http.MethodPost, "/api/v1/availability", SaveDayRequest{Date: "2025-03-10", Timezone: "America/Lima", Slots: slots})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/availability?mentorId=42&month=2025-03", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	month := decode[MonthIndex](t, rr)
	assert.Equal(t, []string{"2025-03-10"}, month.Data.Days)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/availability?mentorId=42&date=2025-03-10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	day := decode[DayAvailability](t, rr)
	assert.Len(t, day.Data.Slots, 3)
	assert.Equal(t, "America/Lima", day.Data.Timezone)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/mentor/availability?date=2025-03-10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[DayAvailability](t, rr).Data.Slots, 3)
}

func TestHandler_DateOrMonthRequired(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{
		"/api/v1/availability?mentorId=42",
		"/api/v1/availability?mentorId=42&date=2025-03-10&month=2025-03",
		"/api/v1/availability?mentorId=abc&date=2025-03-10",
	} {
		rr := doJSONRequest(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
		assert.Equal(t, "VALIDATION_ERROR", decode[any](t, rr).Error.Code)
	}
}

func TestHandler_SaveRejectsInvalidRange(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/availability", SaveDayRequest{
		Date:     "2025-03-10",
		Timezone: "UTC",
		Slots:    []Slot{{StartLocal: "2025-03-10T10:00:00", EndLocal: "2025-03-10T09:00:00"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
