package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/services/auth"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the UI session from the session cookie. When
// the cookie is missing, invalid or expired, a state-changing request starts
// a new session and a read-only request proceeds without one. The cookie is
// reissued whenever a session is attached so its expiry follows the session's.
func SessionMiddleware(store *session.Store, tokens *auth.TokenService, cfg *config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		if token, err := c.Cookie(cfg.CookieName); err == nil && token != "" {
			sessionID, err := tokens.Validate(token)
			if err != nil {
				utils.LogDebug(ctx, "Discarding session cookie", utils.Fields{"reason": err.Error()})
			} else if existing, ok := store.Get(sessionID); ok {
				sess = existing
			}
		}
		if sess == nil {
			if readOnly(c.Request.Method) {
				c.Next()
				return
			}
			sess = store.Create()
		}

		token, err := tokens.Issue(sess.ID)
		if err != nil {
			utils.LogError(ctx, "Failed to issue session token", err)
			appErr := utils.NewInternalError()
			c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
				"error":      appErr,
				"request_id": c.GetString("request_id"),
				"timestamp":  time.Now().Format(time.RFC3339),
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, token, int(tokens.Duration().Seconds()), "/", "", cfg.Secure, true)

		c.Set(sessionContextKey, sess)
		c.Set("session_id", sess.ID)
		c.Request = c.Request.WithContext(utils.WithSessionID(ctx, sess.ID))

		c.Next()
	}
}

// GetSession returns the session attached by SessionMiddleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	sess, ok := value.(*session.Session)
	return sess, ok
}

func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
