package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/pkg/view"
)

// RequireAuth lets signed-in users through. Others are sent to /login with a
// return_to back here; JSON clients get 401.
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			c.Next()
			return
		}
		denyAnonymous(c, flashCodec)
	}
}

// RequireGuest keeps signed-in users off the login page.
func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			if WantsJSON(c) {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"error":      "already authenticated",
					"request_id": GetRequestID(c),
				})
				return
			}
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole lets through users holding one of roles. Anonymous users are
// treated as in RequireAuth; other roles go home with a flash, or get 403.
func RequireRole(flashCodec *flash.Codec, roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			denyAnonymous(c, flashCodec)
			return
		}
		if auth.HasRole(u, roles...) {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}
		SetFlashCookie(c, flashCodec, view.NewFlash(view.FlashError, "login.forbidden"))
		c.Redirect(http.StatusFound, "/")
		c.Abort()
	}
}

func denyAnonymous(c *gin.Context, flashCodec *flash.Codec) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      "authentication required",
			"request_id": GetRequestID(c),
		})
		return
	}

	returnTo := c.Request.URL.RequestURI()
	SetFlashCookie(c, flashCodec, view.NewFlash(view.FlashWarning, "login.required"))
	c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
	c.Abort()
}
