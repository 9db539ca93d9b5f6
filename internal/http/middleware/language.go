package middleware

import (
	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/i18n"
)

const ctxKeyLocalizer = "localizer"

// Language picks the request language: the saved cookie, then
// Accept-Language, then the process-wide active language.
func Language(svc *i18n.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := ""
		if v, err := c.Cookie(i18n.CookieName); err == nil && i18n.IsSupported(v) {
			lang = v
		} else if m, ok := i18n.Match(c.GetHeader("Accept-Language")); ok {
			lang = m
		}
		l := svc.For(lang)
		c.Set(ctxKeyLocalizer, l)
		c.Header("Content-Language", l.Lang())
		c.Next()
	}
}

func GetLocalizer(c *gin.Context) i18n.Localizer {
	if v, ok := c.Get(ctxKeyLocalizer); ok {
		if l, ok := v.(i18n.Localizer); ok {
			return l
		}
	}
	return i18n.Localizer{}
}

// T translates key in the request language.
func T(c *gin.Context, key string, args ...any) string {
	return GetLocalizer(c).T(key, args...)
}

// Lang is the request language code, empty before Language has run.
func Lang(c *gin.Context) string {
	return GetLocalizer(c).Lang()
}
