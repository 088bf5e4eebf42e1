package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartSessionCookie = "cart_session"
	CartSessionKey    = "cart_session"
)

// CartSession makes sure every request carries a cart session id, issuing a
// new cookie when the caller has none or sent a malformed one.
func CartSession(secure bool, maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(CartSessionCookie)
		if err != nil || uuid.Validate(session) != nil {
			session = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CartSessionCookie, session, maxAgeSeconds, "/", "", secure, true)
		}
		c.Set(CartSessionKey, session)
		c.Next()
	}
}
