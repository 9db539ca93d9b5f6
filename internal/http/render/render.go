// Package render writes templ page components inside the shared layout.
package render

import (
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// NewPage collects what the layout needs from the request. titleKey is a
// translation key.
func NewPage(c *gin.Context, titleKey string) view.Page {
	u, _ := middleware.CurrentUser(c)
	loc := middleware.GetLocalizer(c)
	return view.Page{
		TitleKey:  titleKey,
		Path:      c.Request.URL.Path,
		User:      u,
		Lang:      loc.Lang(),
		CSRFToken: middleware.GetCSRFToken(c),
		Flash:     middleware.GetFlash(c),
		CartCount: middleware.GetCartCount(c),
		RequestID: middleware.GetRequestID(c),
		Loc:       loc,
	}
}

// Component writes comp as the HTML response with status.
func Component(c *gin.Context, status int, comp templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := comp.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(fmt.Errorf("render: %w", err))
	}
}

// ErrorPage renders the error page; it satisfies middleware.ErrorPage.
func ErrorPage(c *gin.Context, status int, msg string) {
	Component(c, status, pages.Error(NewPage(c, "errors.title"), view.ErrorPage{Status: status, Message: msg}))
}

// RedirectWithFlash sets a one-shot message and redirects with 302. args are
// name/value pairs for the message key.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, key string, args ...string) {
	middleware.SetFlashCookie(c, codec, view.NewFlash(kind, key, args...))
	c.Redirect(http.StatusFound, location)
}
