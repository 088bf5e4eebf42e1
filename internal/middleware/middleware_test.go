package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCartSession_IssuesAndReusesCookie(t *testing.T) {
	router := gin.New()
	router.Use(CartSession(false, 3600))
	router.GET("/s", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CartSessionKey)) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/s", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CartSessionCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, w.Body.String())

	w2 := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/s", nil)
	req.AddCookie(cookies[0])
	router.ServeHTTP(w2, req)
	assert.Equal(t, cookies[0].Value, w2.Body.String())
	assert.Empty(t, w2.Result().Cookies())
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(2, zap.NewNop()))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()), Recovery(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestCORS_PreflightAndOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://app.mentorhub.io"}))
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.mentorhub.io")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.mentorhub.io", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
