package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "Ese horario ya está reservado y no se puede eliminar.", Message(CodeSlotBooked))
	assert.Equal(t, "Ocurrió un error inesperado. Inténtalo de nuevo.", Message("SOMETHING_NEW"))
}

func TestUnauthenticated_IncludesRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Unauthenticated(c, "/sign-in")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, CodeUnauthenticated, body.Error.Code)
	assert.Equal(t, "/sign-in", body.Error.Details["redirect"])
	assert.True(t, c.IsAborted())
}
