package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/shared/apperr"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newEngine(page ErrorPage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(quietLogger(), page), Recovery(quietLogger()))
	return r
}

// withUser stands in for SessionMiddleware.
func withUser(u *auth.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u != nil {
			c.Set(ctxKeyUser, u)
		}
		c.Next()
	}
}

func TestRequestIDIsReusedOrMinted(t *testing.T) {
	r := newEngine(nil)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("x", 200))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.NotEqual(t, strings.Repeat("x", 200), rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get(HeaderRequestID))
}

func TestErrorHandlerJSON(t *testing.T) {
	r := newEngine(nil)
	r.GET("/api/thing", func(c *gin.Context) {
		Fail(c, apperr.InvalidErr("Check the form.", map[string]string{"email": "email"}))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/thing", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Check the form.", body["error"])
	assert.Equal(t, map[string]any{"email": "email"}, body["fields"])
	assert.NotEmpty(t, body["request_id"])
}

func TestErrorHandlerUsesPage(t *testing.T) {
	var gotStatus int
	r := newEngine(func(c *gin.Context, status int, msg string) {
		gotStatus = status
		c.String(status, "page:"+msg)
	})
	r.GET("/missing", func(c *gin.Context) { Fail(c, apperr.NotFoundErr("")) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, gotStatus)
	// no localizer installed: the key itself is the message
	assert.Equal(t, "page:errors.notFound", rec.Body.String())
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	r := newEngine(nil)
	r.GET("/api/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestRequireRole(t *testing.T) {
	codec := flash.NewCodec([]byte("k"), "portal_flash", false)
	tests := []struct {
		name     string
		user     *auth.User
		accept   string
		status   int
		location string
	}{
		{"allowed", &auth.User{ID: "1", Role: auth.RoleAdmin}, "", http.StatusOK, ""},
		{"wrong role html", &auth.User{ID: "1", Role: auth.RoleClient}, "", http.StatusFound, "/"},
		{"wrong role json", &auth.User{ID: "1", Role: auth.RoleClient}, "application/json", http.StatusForbidden, ""},
		{"anonymous html", nil, "", http.StatusFound, "/login?return_to=%2Fadmin"},
		{"anonymous json", nil, "application/json", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(nil)
			r.GET("/admin", withUser(tt.user), RequireRole(codec, auth.RoleAdmin), func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

// csrfSession performs a GET and returns the CSRF cookie and the token the
// handler saw.
func csrfSession(t *testing.T, r *gin.Engine) (*http.Cookie, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/token", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CSRFCookieName {
			return ck, rec.Body.String()
		}
	}
	t.Fatal("no csrf cookie issued")
	return nil, ""
}

func csrfEngine(secure bool) *gin.Engine {
	r := newEngine(nil)
	r.Use(CSRF(testCSRFKey, secure))
	r.GET("/token", func(c *gin.Context) { c.String(http.StatusOK, GetCSRFToken(c)) })
	r.POST("/api/echo", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

var testCSRFKey = []byte("0123456789abcdef0123456789abcdef")

func TestCSRFAcceptsHeaderToken(t *testing.T) {
	r := csrfEngine(false)
	cookie, token := csrfSession(t, r)
	require.NotEmpty(t, token)

	send := func(header string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/echo", nil)
		req.AddCookie(cookie)
		if header != "" {
			req.Header.Set(CSRFHeader, header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(token))
	assert.Equal(t, http.StatusForbidden, send("wrong"))
	assert.Equal(t, http.StatusForbidden, send(""))
}

func TestCSRFAcceptsFormField(t *testing.T) {
	r := csrfEngine(false)
	cookie, token := csrfSession(t, r)

	form := url.Values{CSRFFormField: {token}}
	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFRejectsTokenWithoutCookie(t *testing.T) {
	r := csrfEngine(false)
	_, token := csrfSession(t, r)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", nil)
	req.Header.Set(CSRFHeader, token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFIssuesCookieOnGet(t *testing.T) {
	r := csrfEngine(true)
	cookie, token := csrfSession(t, r)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, cookie.Value, token)
}
