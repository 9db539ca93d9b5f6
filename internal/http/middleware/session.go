package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/backend"
)

const (
	ctxKeySession = "session"
	ctxKeyUser    = "user"
)

// SessionResolver looks up live sessions.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*auth.Session, bool)
}

type SessionCfg struct {
	Sessions   SessionResolver
	CookieName string
	Secure     bool
}

// SessionMiddleware resolves the session cookie once, before any guard runs.
// A live session puts the user in the context and its access token on the
// request context; a stale cookie is cleared.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess, ok := cfg.Sessions.Resolve(c.Request.Context(), sessionID)
		if !ok {
			clearCookie(c, cfg.CookieName, cfg.Secure)
			c.Next()
			return
		}

		u := sess.User()
		c.Set(ctxKeySession, sess)
		c.Set(ctxKeyUser, &u)
		c.Request = c.Request.WithContext(backend.WithAccessToken(c.Request.Context(), sess.AccessToken))

		c.Next()
	}
}

// SetSessionCookie writes the session cookie to expire with the session.
func SetSessionCookie(c *gin.Context, cfg SessionCfg, sess *auth.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, sess.ID, maxAge, "/", "", cfg.Secure, true)
}

func ClearSessionCookie(c *gin.Context, cfg SessionCfg) {
	clearCookie(c, cfg.CookieName, cfg.Secure)
}

// CurrentUser returns the signed-in user.
func CurrentUser(c *gin.Context) (*auth.User, bool) {
	if v, ok := c.Get(ctxKeyUser); ok {
		if u, ok := v.(*auth.User); ok && u != nil {
			return u, true
		}
	}
	return nil, false
}

func CurrentSession(c *gin.Context) (*auth.Session, bool) {
	if v, ok := c.Get(ctxKeySession); ok {
		if s, ok := v.(*auth.Session); ok && s != nil {
			return s, true
		}
	}
	return nil, false
}

// SessionID is the current session's id, or "" for anonymous requests.
func SessionID(c *gin.Context) string {
	if s, ok := CurrentSession(c); ok {
		return s.ID
	}
	return ""
}
