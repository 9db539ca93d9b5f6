package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"

	"medisupply.com/portal/internal/shared/apperr"
)

const (
	CSRFCookieName = "portal_csrf"
	CSRFFormField  = "csrf_token"
	CSRFHeader     = "X-CSRF-Token"
	ctxKeyCSRF     = "csrf_token"
)

// CSRF runs gorilla/csrf inside the gin chain. Unsafe requests must echo the
// masked token in the csrf_token form field or the X-CSRF-Token header. key
// authenticates the token cookie and must be 32 bytes. Without secure the
// cookie is sent over plain HTTP and the TLS referer check is skipped.
func CSRF(key []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(key,
		csrf.CookieName(CSRFCookieName),
		csrf.FieldName(CSRFFormField),
		csrf.RequestHeader(CSRFHeader),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Secure(secure),
		csrf.ErrorHandler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Set(ctxKeyCSRF, csrf.Token(r))
			c.Next()
		})

		r := c.Request
		if !secure {
			r = csrf.PlaintextHTTPRequest(r)
		}
		protect(next).ServeHTTP(c.Writer, r)

		if !passed {
			Fail(c, apperr.ForbiddenErr(T(c, "errors.csrf")))
		}
	}
}

// GetCSRFToken is the masked token for the current request; it changes on
// every request and is valid as long as the cookie is.
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(ctxKeyCSRF)
}
