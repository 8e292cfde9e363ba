// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/pkg/session"
)

// SessionIDKey is the gin context key holding the cart session id
const SessionIDKey = "cart_session_id"

// CartSession resolves the cart session from its signed cookie. Requests
// without a valid cookie get a fresh session and a new cookie.
func CartSession(cfg *config.Config, manager *session.Manager, logger logrus.FieldLogger) gin.HandlerFunc {
	maxAge := int(cfg.Session.Expiry.Seconds())

	return func(c *gin.Context) {
		if token, err := c.Cookie(cfg.Session.CookieName); err == nil && token != "" {
			sessionID, err := manager.Verify(token)
			if err == nil {
				c.Set(SessionIDKey, sessionID)
				c.Next()
				return
			}
			logger.WithError(err).Debug("Replacing invalid cart session cookie")
		}

		sessionID, token, err := manager.NewSession()
		if err != nil {
			logger.WithError(err).Error("Failed to create cart session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create cart session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, token, maxAge, "/", "", cfg.Session.Secure, true)
		c.Set(SessionIDKey, sessionID)

		c.Next()
	}
}

// GetSessionID returns the cart session id set by CartSession
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
