package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"medisupply.com/portal/internal/http/middleware"
	"medisupply.com/portal/internal/shared/apperr"
)

// fieldsOf marks the fields named by an apperr as invalid so the form can
// highlight them. formKey is shown above the form.
func fieldsOf(c *gin.Context, err error, formKey string) map[string]string {
	out := map[string]string{"_": middleware.T(c, formKey)}
	if ae, ok := apperr.As(err); ok {
		for k := range ae.Fields {
			out[k] = middleware.T(c, "errors.invalidForm")
		}
	}
	return out
}

// atoiOr parses a form integer, returning def for blanks and garbage.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
