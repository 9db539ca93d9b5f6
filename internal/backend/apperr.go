package backend

import (
	"errors"
	"net/http"

	"medisupply.com/portal/internal/shared/apperr"
)

// CommandError converts a failed command call into an *apperr.AppError the
// error handler can render. publicMsg is used for upstream failures.
func CommandError(publicMsg string, err error) error {
	if err == nil {
		return nil
	}
	var se *StatusError
	if !errors.As(err, &se) {
		return apperr.UnavailableErr(publicMsg, err)
	}
	var ae *apperr.AppError
	switch se.Status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		ae = apperr.InvalidErr(publicMsg, nil)
	case http.StatusUnauthorized:
		ae = apperr.UnauthorizedErr(publicMsg)
	case http.StatusForbidden:
		ae = apperr.ForbiddenErr(publicMsg)
	case http.StatusNotFound:
		ae = apperr.NotFoundErr(publicMsg)
	case http.StatusConflict:
		ae = apperr.ConflictErr(publicMsg)
	default:
		return apperr.UnavailableErr(publicMsg, err)
	}
	ae.Err = err
	return ae
}
