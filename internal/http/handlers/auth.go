package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/auth"
	"medisupply.com/portal/internal/http/flash"
	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/http/render"
	"medisupply.com/portal/internal/http/validation"
	"medisupply.com/portal/internal/modules/cart"
	"medisupply.com/portal/pkg/view"
	"medisupply.com/portal/templates/pages"
)

// normalizeReturnTo accepts only same-site relative paths, so return_to
// cannot be used as an open redirect.
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	if strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/\\") {
		return ""
	}
	if strings.Contains(s, "://") {
		return ""
	}
	return s
}

// AuthHandlers serves /login and /logout.
type AuthHandlers struct {
	auth    *auth.Service
	carts   *cart.Service
	flash   *flash.Codec
	sessCfg middleware.SessionCfg
	forms   *validation.Translator
	logger  *slog.Logger
}

func NewAuthHandlers(svc *auth.Service, carts *cart.Service, flashCodec *flash.Codec, sessCfg middleware.SessionCfg, forms *validation.Translator, logger *slog.Logger) *AuthHandlers {
	return &AuthHandlers{auth: svc, carts: carts, flash: flashCodec, sessCfg: sessCfg, forms: forms, logger: logger}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandlers) LoginGet(c *gin.Context) {
	render.Component(c, http.StatusOK, pages.Login(render.NewPage(c, "login.title"), view.LoginPage{
		ReturnTo: normalizeReturnTo(c.Query("return_to")),
	}))
}

func (h *AuthHandlers) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		p := render.NewPage(c, "login.title").WithErrors(h.forms.FromBindError(err, &in, middleware.Lang(c)))
		render.Component(c, http.StatusBadRequest, pages.Login(p, view.LoginPage{Email: in.Email, ReturnTo: returnTo}))
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		status, key := http.StatusUnauthorized, "login.invalid"
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
		case errors.Is(err, auth.ErrChallengeRequired):
			key = "login.challenge"
		default:
			status, key = http.StatusBadGateway, "login.failed"
			h.logger.ErrorContext(c.Request.Context(), "login_failed",
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.String("err", err.Error()))
		}
		render.Component(c, status, pages.Login(render.NewPage(c, "login.title"), view.LoginPage{Email: in.Email, ReturnTo: returnTo, Error: key}))
		return
	}

	middleware.SetSessionCookie(c, h.sessCfg, sess)
	dest := "/"
	if returnTo != "" {
		dest = returnTo
	}
	name := sess.Name
	if name == "" {
		name = sess.Email
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "login.welcome", "name", name)
}

// Logout ends the session and drops the cart keyed by it.
func (h *AuthHandlers) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	id := middleware.SessionID(c)
	if err := h.carts.Clear(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "cart_clear_failed", slog.String("err", err.Error()))
	}
	if err := h.auth.Logout(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "logout_failed", slog.String("err", err.Error()))
	}
	middleware.ClearSessionCookie(c, h.sessCfg)
	render.RedirectWithFlash(c, h.flash, "/login", view.FlashInfo, "login.loggedOut")
}
