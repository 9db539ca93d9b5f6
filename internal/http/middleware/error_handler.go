package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/shared/apperr"
)

// ErrorPage renders the HTML error page for status.
type ErrorPage func(c *gin.Context, status int, msg string)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler turns the last handler error into a JSON body or an HTML page.
func ErrorHandler(l *slog.Logger, page ErrorPage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if errors.Is(err, context.Canceled) {
			c.AbortWithStatus(499)
			return
		}
		status := apperr.HTTPStatus(err)
		rid := GetRequestID(c)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		l.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		msg := publicMessage(c, err, status)
		if WantsJSON(c) {
			payload := gin.H{"error": msg, "request_id": rid}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		c.Abort()
		if page == nil {
			c.String(status, "%d %s\n%s\nRequest ID: %s", status, http.StatusText(status), msg, rid)
			return
		}
		page(c, status, msg)
	}
}

// publicMessage prefers the error's own message and otherwise uses the
// translated text for its status.
func publicMessage(c *gin.Context, err error, status int) string {
	if ae, ok := apperr.As(err); ok && ae.PublicMsg != "" && ae.Kind != apperr.Internal {
		return ae.PublicMsg
	}
	key := "errors.internal"
	switch status {
	case http.StatusNotFound:
		key = "errors.notFound"
	case http.StatusForbidden:
		key = "errors.forbidden"
	case http.StatusUnauthorized:
		key = "errors.unauthorized"
	case http.StatusBadGateway:
		key = "errors.unavailable"
	case http.StatusBadRequest:
		key = "errors.invalidForm"
	}
	return T(c, key)
}
