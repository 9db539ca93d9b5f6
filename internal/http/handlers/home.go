package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/i18n"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

const languageCookieAge = 365 * 24 * time.Hour

func Home(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Home(render.NewPage(c, "nav.home")))
}

func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound renders the error page for unknown routes.
func NotFound(c *gin.Context) {
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "request_id": middleware.GetRequestID(c)})
		return
	}
	render.ErrorPage(c, http.StatusNotFound, middleware.T(c, "errors.notFound"))
}

// SettingsHandlers switches the user's language and, for admins, the
// portal-wide default.
type SettingsHandlers struct {
	i18n   *i18n.Service
	flash  *flash.Codec
	secure bool
}

func NewSettingsHandlers(svc *i18n.Service, flashCodec *flash.Codec, secure bool) *SettingsHandlers {
	return &SettingsHandlers{i18n: svc, flash: flashCodec, secure: secure}
}

func (h *SettingsHandlers) Get(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Settings(render.NewPage(c, "settings.title"), view.SettingsPage{
		Current:        middleware.Lang(c),
		DefaultCurrent: h.i18n.GetCurrentLanguage(),
		Languages:      h.i18n.GetAvailableLanguages(),
	}))
}

func (h *SettingsHandlers) SetLanguage(c *gin.Context) {
	lang := c.PostForm("language")
	if !i18n.IsSupported(lang) {
		render.RedirectWithFlash(c, h.flash, "/settings", view.FlashError, "errors.invalidForm")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(i18n.CookieName, lang, int(languageCookieAge.Seconds()), "/", "", h.secure, true)
	render.RedirectWithFlash(c, h.flash, "/settings", view.FlashSuccess, "settings.saved")
}

func (h *SettingsHandlers) SetDefaultLanguage(c *gin.Context) {
	if err := h.i18n.SetLanguage(c.PostForm("language")); err != nil {
		render.RedirectWithFlash(c, h.flash, "/settings", view.FlashError, "errors.invalidForm")
		return
	}
	render.RedirectWithFlash(c, h.flash, "/settings", view.FlashSuccess, "settings.defaultSaved")
}
